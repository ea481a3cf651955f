package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
)

// fakeStore is a minimal BoardStore for use case tests. Groups are
// assembled on read from a limit table plus the stored posts, the same
// way real backends do it.
type fakeStore struct {
	limits map[string]domain.NoiceLimit
	posts  map[string]domain.Post
	users  map[string]domain.User

	updatePostErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		limits: make(map[string]domain.NoiceLimit),
		posts:  make(map[string]domain.Post),
		users:  make(map[string]domain.User),
	}
}

func (f *fakeStore) putPost(p domain.Post) { f.posts[p.ID().String()] = p }
func (f *fakeStore) putUser(u domain.User) { f.users[u.ID().String()] = u }

func (f *fakeStore) putLimit(path string, limit domain.NoiceLimit) { f.limits[path] = limit }

func (f *fakeStore) GetPostGroup(_ context.Context, path domain.PostGroupPath) (domain.PostGroup, error) {
	limit, ok := f.limits[path.String()]
	if !ok {
		return domain.PostGroup{}, NotFound("post group %q not found", path.String())
	}
	group := domain.NewPostGroup(path.Leaf(), limit)
	for _, post := range f.posts {
		if post.GroupPath() == path {
			group = group.AddPost(post)
		}
	}
	return group, nil
}

func (f *fakeStore) ListPostGroups(ctx context.Context) ([]domain.PostGroup, error) {
	groups := make([]domain.PostGroup, 0, len(f.limits))
	for path := range f.limits {
		group, err := f.GetPostGroup(ctx, domain.MustPostGroupPath(path))
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (f *fakeStore) GetPost(_ context.Context, id domain.PostID) (domain.Post, error) {
	post, ok := f.posts[id.String()]
	if !ok {
		return domain.Post{}, NotFound("post %q not found", id.String())
	}
	return post, nil
}

func (f *fakeStore) ListPosts(_ context.Context, groupPath domain.PostGroupPath) ([]domain.Post, error) {
	var posts []domain.Post
	for _, post := range f.posts {
		if groupPath.IsZero() || post.GroupPath() == groupPath {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakeStore) CreatePost(_ context.Context, post domain.Post) error {
	if _, exists := f.posts[post.ID().String()]; exists {
		return InvalidData("post %q already exists", post.ID().String())
	}
	f.posts[post.ID().String()] = post
	return nil
}

func (f *fakeStore) UpdatePost(_ context.Context, post domain.Post) error {
	if f.updatePostErr != nil {
		return f.updatePostErr
	}
	if _, ok := f.posts[post.ID().String()]; !ok {
		return NotFound("post %q not found", post.ID().String())
	}
	f.posts[post.ID().String()] = post
	return nil
}

func (f *fakeStore) DeletePost(_ context.Context, id domain.PostID) error {
	if _, ok := f.posts[id.String()]; !ok {
		return NotFound("post %q not found", id.String())
	}
	delete(f.posts, id.String())
	return nil
}

func (f *fakeStore) AddNoice(_ context.Context, postID domain.PostID, userID domain.UserID) error {
	post, ok := f.posts[postID.String()]
	if !ok {
		return NotFound("post %q not found", postID.String())
	}
	f.posts[postID.String()] = post.AddNoice(domain.NewNoice(userID, postID, domain.MustNoiceAmount(1)))
	return nil
}

func (f *fakeStore) RemoveNoice(_ context.Context, postID domain.PostID, userID domain.UserID) error {
	post, ok := f.posts[postID.String()]
	if !ok {
		return NotFound("post %q not found", postID.String())
	}
	for _, n := range post.Noices() {
		if n.IsFromUser(userID) {
			f.posts[postID.String()] = post.RemoveNoice(n.ID())
			return nil
		}
	}
	return NotFound("no noice by user %q", userID.String())
}

func (f *fakeStore) NoiceCount(_ context.Context, postID domain.PostID) (int, error) {
	post, ok := f.posts[postID.String()]
	if !ok {
		return 0, NotFound("post %q not found", postID.String())
	}
	return post.NoiceCount(), nil
}

func (f *fakeStore) GetUser(_ context.Context, id domain.UserID) (domain.User, error) {
	user, ok := f.users[id.String()]
	if !ok {
		return domain.User{}, NotFound("user %q not found", id.String())
	}
	return user, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, user domain.User) error {
	if _, ok := f.users[user.ID().String()]; !ok {
		return NotFound("user %q not found", user.ID().String())
	}
	f.users[user.ID().String()] = user
	return nil
}
