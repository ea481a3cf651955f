package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/pkg/log"
)

// CreatePostUseCase validates raw input into domain values and stores the
// resulting post.
type CreatePostUseCase struct {
	store BoardStore
}

// NewCreatePostUseCase creates a new CreatePostUseCase.
func NewCreatePostUseCase(store BoardStore) *CreatePostUseCase {
	return &CreatePostUseCase{store: store}
}

// CreatePostInput carries raw, unvalidated post fields. GroupPath may be
// empty for the default group; Hashtags may be empty.
type CreatePostInput struct {
	Title     string
	Content   string
	AuthorID  domain.UserID
	GroupPath string
	Hashtags  []string
}

// Execute builds and persists a new post. Validation failures surface as
// *domain.ValidationError.
func (uc *CreatePostUseCase) Execute(ctx context.Context, in CreatePostInput) (domain.Post, error) {
	title, err := domain.NewPostTitle(in.Title)
	if err != nil {
		return domain.Post{}, err
	}
	content, err := domain.NewPostContent(in.Content)
	if err != nil {
		return domain.Post{}, err
	}

	opts := []domain.PostOption{}
	if in.GroupPath != "" {
		path, err := domain.NewPostGroupPath(in.GroupPath)
		if err != nil {
			return domain.Post{}, err
		}
		opts = append(opts, domain.InGroup(path))
	}
	if len(in.Hashtags) > 0 {
		tags, err := domain.NewHashtagList(in.Hashtags)
		if err != nil {
			return domain.Post{}, err
		}
		opts = append(opts, domain.Tagged(tags...))
	}

	post := domain.NewPost(title, content, in.AuthorID, opts...)
	if err := uc.store.CreatePost(ctx, post); err != nil {
		return domain.Post{}, err
	}

	log.GlobalInfoCtx(ctx, "post created",
		"post_id", post.ID().String(),
		"group", post.GroupPath().String())
	return post, nil
}
