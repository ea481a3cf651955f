package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
)

// GetBoardUseCase reads groups and their posts for presentation.
type GetBoardUseCase struct {
	store BoardStore
}

// NewGetBoardUseCase creates a new GetBoardUseCase.
func NewGetBoardUseCase(store BoardStore) *GetBoardUseCase {
	return &GetBoardUseCase{store: store}
}

// ListGroups returns every group known to the store.
func (uc *GetBoardUseCase) ListGroups(ctx context.Context) ([]domain.PostGroup, error) {
	return uc.store.ListPostGroups(ctx)
}

// GetGroup returns the group at path.
func (uc *GetBoardUseCase) GetGroup(ctx context.Context, path domain.PostGroupPath) (domain.PostGroup, error) {
	return uc.store.GetPostGroup(ctx, path)
}

// ListPosts returns the posts directly in the group at path.
func (uc *GetBoardUseCase) ListPosts(ctx context.Context, path domain.PostGroupPath) ([]domain.Post, error) {
	return uc.store.ListPosts(ctx, path)
}

// GetPost returns a single post by id.
func (uc *GetBoardUseCase) GetPost(ctx context.Context, id domain.PostID) (domain.Post, error) {
	return uc.store.GetPost(ctx, id)
}
