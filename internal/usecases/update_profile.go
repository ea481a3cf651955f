package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
)

// UpdateProfileUseCase changes a user's mutable profile fields.
type UpdateProfileUseCase struct {
	store BoardStore
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase.
func NewUpdateProfileUseCase(store BoardStore) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{store: store}
}

// Execute validates the raw display name and persists the renamed user.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID domain.UserID, rawDisplayName string) (domain.User, error) {
	name, err := domain.NewUserDisplayName(rawDisplayName)
	if err != nil {
		return domain.User{}, err
	}

	user, err := uc.store.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	renamed := user.WithDisplayName(name)
	if err := uc.store.UpdateUser(ctx, renamed); err != nil {
		return domain.User{}, err
	}
	return renamed, nil
}
