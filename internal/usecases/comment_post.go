package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
)

// CommentPostUseCase appends a reader comment to a post.
type CommentPostUseCase struct {
	store BoardStore
}

// NewCommentPostUseCase creates a new CommentPostUseCase.
func NewCommentPostUseCase(store BoardStore) *CommentPostUseCase {
	return &CommentPostUseCase{store: store}
}

// Execute validates content, appends the comment and persists the post.
func (uc *CommentPostUseCase) Execute(ctx context.Context, postID domain.PostID, authorID domain.UserID, content string) (domain.Post, error) {
	post, err := uc.store.GetPost(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}

	updated, err := post.AddComment(content, authorID)
	if err != nil {
		return domain.Post{}, err
	}
	if err := uc.store.UpdatePost(ctx, updated); err != nil {
		return domain.Post{}, err
	}
	return updated, nil
}
