package usecases

import (
	"context"
	"errors"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/pkg/log"
)

// ErrNoiceLimitReached is returned when a sender has used up their noice
// quota for the post's group.
var ErrNoiceLimitReached = errors.New("noice limit reached for this group")

// GiveNoiceUseCase places a weighted noice reaction on a post, enforcing
// the group quota and the sender's balance.
type GiveNoiceUseCase struct {
	store BoardStore
}

// NewGiveNoiceUseCase creates a new GiveNoiceUseCase.
func NewGiveNoiceUseCase(store BoardStore) *GiveNoiceUseCase {
	return &GiveNoiceUseCase{store: store}
}

// GiveNoiceInput carries the reaction parameters. Comment is optional.
type GiveNoiceInput struct {
	PostID  domain.PostID
	UserID  domain.UserID
	Amount  domain.NoiceAmount
	Comment string
}

// Execute runs the quota transaction in a fixed order: re-read the group
// from the store, count the sender's existing noices there, compare with
// the group limit, debit the sender's balance, then append the noice and
// persist. Counts are always recomputed from the current snapshot; there
// is no cached counter.
func (uc *GiveNoiceUseCase) Execute(ctx context.Context, in GiveNoiceInput) (domain.Post, error) {
	post, err := uc.store.GetPost(ctx, in.PostID)
	if err != nil {
		return domain.Post{}, err
	}

	group, err := uc.store.GetPostGroup(ctx, post.GroupPath())
	if err != nil {
		return domain.Post{}, err
	}

	used := group.CountNoicesByUser(in.UserID)
	if used >= group.NoiceLimit().Value() {
		log.GlobalDebugCtx(ctx, "noice rejected, quota reached",
			"user_id", in.UserID.String(),
			"group", post.GroupPath().String(),
			"used", used,
			"limit", group.NoiceLimit().Value())
		return domain.Post{}, ErrNoiceLimitReached
	}

	sender, err := uc.store.GetUser(ctx, in.UserID)
	if err != nil {
		return domain.Post{}, err
	}
	debited, err := sender.SubtractNoice(in.Amount)
	if err != nil {
		return domain.Post{}, err
	}

	noice, err := buildNoice(in)
	if err != nil {
		return domain.Post{}, err
	}

	updated := post.AddNoice(noice)
	if err := uc.store.UpdatePost(ctx, updated); err != nil {
		return domain.Post{}, err
	}
	if err := uc.store.UpdateUser(ctx, debited); err != nil {
		return domain.Post{}, err
	}

	log.GlobalInfoCtx(ctx, "noice given",
		"post_id", in.PostID.String(),
		"user_id", in.UserID.String(),
		"amount", in.Amount.Value())
	return updated, nil
}

func buildNoice(in GiveNoiceInput) (domain.Noice, error) {
	if in.Comment == "" {
		return domain.NewNoice(in.UserID, in.PostID, in.Amount), nil
	}
	return domain.NewNoiceWithComment(in.UserID, in.PostID, in.Amount, in.Comment)
}
