package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/pkg/log"
)

// ReviewPostUseCase moves a post through the moderation workflow.
type ReviewPostUseCase struct {
	store BoardStore
}

// NewReviewPostUseCase creates a new ReviewPostUseCase.
func NewReviewPostUseCase(store BoardStore) *ReviewPostUseCase {
	return &ReviewPostUseCase{store: store}
}

// ReviewPostInput carries the review action. Status is optional (empty
// keeps the current one); Comment is optional.
type ReviewPostInput struct {
	PostID     domain.PostID
	ReviewerID domain.UserID
	Status     string
	Comment    string
}

// Execute applies the status change and/or appends the review comment.
func (uc *ReviewPostUseCase) Execute(ctx context.Context, in ReviewPostInput) (domain.Post, error) {
	post, err := uc.store.GetPost(ctx, in.PostID)
	if err != nil {
		return domain.Post{}, err
	}

	if in.Status != "" {
		status, err := domain.ParseReviewStatus(in.Status)
		if err != nil {
			return domain.Post{}, err
		}
		post = post.WithReviewStatus(status)
	}
	if in.Comment != "" {
		post, err = post.AddReviewComment(in.Comment, in.ReviewerID)
		if err != nil {
			return domain.Post{}, err
		}
	}

	if err := uc.store.UpdatePost(ctx, post); err != nil {
		return domain.Post{}, err
	}

	log.GlobalInfoCtx(ctx, "post reviewed",
		"post_id", in.PostID.String(),
		"status", post.ReviewStatus().String())
	return post, nil
}
