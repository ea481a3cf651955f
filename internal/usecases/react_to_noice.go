package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/pkg/log"
)

// ReactToNoiceUseCase attaches a noice to another noice anywhere in a
// post's reaction tree. Nested reactions spend balance like top-level
// ones but do not count against the group quota, which only tracks
// top-level noices.
type ReactToNoiceUseCase struct {
	store BoardStore
}

// NewReactToNoiceUseCase creates a new ReactToNoiceUseCase.
func NewReactToNoiceUseCase(store BoardStore) *ReactToNoiceUseCase {
	return &ReactToNoiceUseCase{store: store}
}

// ReactToNoiceInput carries the nested reaction parameters.
type ReactToNoiceInput struct {
	PostID   domain.PostID
	ParentID domain.NoiceID
	UserID   domain.UserID
	Amount   domain.NoiceAmount
	Comment  string
}

// Execute debits the sender, appends the reaction under ParentID and
// persists the post and the sender.
func (uc *ReactToNoiceUseCase) Execute(ctx context.Context, in ReactToNoiceInput) (domain.Post, error) {
	post, err := uc.store.GetPost(ctx, in.PostID)
	if err != nil {
		return domain.Post{}, err
	}

	sender, err := uc.store.GetUser(ctx, in.UserID)
	if err != nil {
		return domain.Post{}, err
	}
	debited, err := sender.SubtractNoice(in.Amount)
	if err != nil {
		return domain.Post{}, err
	}

	child, err := buildNoice(GiveNoiceInput{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Amount:  in.Amount,
		Comment: in.Comment,
	})
	if err != nil {
		return domain.Post{}, err
	}

	updated, err := post.AddNoiceTo(in.ParentID, child)
	if err != nil {
		return domain.Post{}, err
	}
	if err := uc.store.UpdatePost(ctx, updated); err != nil {
		return domain.Post{}, err
	}
	if err := uc.store.UpdateUser(ctx, debited); err != nil {
		return domain.Post{}, err
	}

	log.GlobalInfoCtx(ctx, "noice reaction added",
		"post_id", in.PostID.String(),
		"parent_noice_id", in.ParentID.String(),
		"user_id", in.UserID.String())
	return updated, nil
}
