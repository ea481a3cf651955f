// Package store provides BoardStore adapters: the in-memory backend used
// for development and tests, seeded with a small demo board.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/internal/usecases"
)

// Stable seed identities so clients and tests can reference them.
const (
	SeedUserAlice   = "1b4f0e98-5c4e-4d21-9d2a-3f8b6c7d8e9f"
	SeedUserBob     = "2c5a1fa9-6d5f-4e32-8e3b-4a9c7d8e9f0a"
	SeedUserCharlie = "3d6b2fb0-7e6a-4f43-9f4c-5b0d8e9f0a1b"

	SeedPostRelease = "aa11bb22-cc33-4d44-8e55-ff6677889900"
	SeedPostPalette = "bb22cc33-dd44-4e55-9f66-001122334455"
	SeedPostLunch   = "cc33dd44-ee55-4f66-8a77-112233445566"
)

// groupRecord is the stored shape of a group. Posts and children are
// assembled on read.
type groupRecord struct {
	name  domain.GroupName
	limit domain.NoiceLimit
}

// Memory is an in-memory BoardStore guarded by a single RWMutex. Entities
// are value types, so handing them out never leaks internal state.
type Memory struct {
	mu     sync.RWMutex
	groups map[string]groupRecord
	posts  map[string]domain.Post
	order  []string
	users  map[string]domain.User
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		groups: make(map[string]groupRecord),
		posts:  make(map[string]domain.Post),
		users:  make(map[string]domain.User),
	}
}

// NewSeededMemory creates an in-memory store pre-populated with demo
// users, groups and posts.
func NewSeededMemory() *Memory {
	m := NewMemory()
	m.seed()
	return m
}

func (m *Memory) seed() {
	now := time.Now().UTC()

	alice := domain.RestoreUser(
		domain.MustUserID(SeedUserAlice),
		domain.MustUsername("alicedev"),
		domain.MustUserDisplayName("Alice Developer"),
		domain.MustNoiceAmount(100),
		domain.MustRupeeAmount(10),
		now.Add(-72*time.Hour),
	)
	bob := domain.RestoreUser(
		domain.MustUserID(SeedUserBob),
		domain.MustUsername("bobdesigner"),
		domain.MustUserDisplayName("Bob Designer"),
		domain.MustNoiceAmount(150),
		domain.MustRupeeAmount(20),
		now.Add(-48*time.Hour),
	)
	charlie := domain.RestoreUser(
		domain.MustUserID(SeedUserCharlie),
		domain.MustUsername("charliepm"),
		domain.MustUserDisplayName("Charlie PM"),
		domain.MustNoiceAmount(200),
		domain.MustRupeeAmount(30),
		now.Add(-24*time.Hour),
	)
	for _, u := range []domain.User{alice, bob, charlie} {
		m.users[u.ID().String()] = u
	}

	m.groups["tech"] = groupRecord{domain.MustGroupName("tech"), domain.MustNoiceLimit(50)}
	m.groups["tech/frontend"] = groupRecord{domain.MustGroupName("frontend"), domain.MustNoiceLimit(30)}
	m.groups["design"] = groupRecord{domain.MustGroupName("design"), domain.MustNoiceLimit(30)}
	m.groups["general"] = groupRecord{domain.MustGroupName("general"), domain.MustNoiceLimit(20)}

	release := domain.RestorePost(
		domain.MustPostID(SeedPostRelease),
		domain.MustPostTitle("Shipped the v2 release"),
		domain.MustPostContent("The v2 release is out. Huge thanks to everyone who reviewed."),
		alice.ID(),
		domain.MustPostGroupPath("tech"),
		[]domain.Hashtag{domain.MustHashtag("#release")},
		domain.ReviewPending,
		nil, nil, nil,
		now.Add(-36*time.Hour), now.Add(-36*time.Hour),
	)
	palette := domain.RestorePost(
		domain.MustPostID(SeedPostPalette),
		domain.MustPostTitle("New color palette proposal"),
		domain.MustPostContent("Draft palette for the rebrand, feedback welcome."),
		bob.ID(),
		domain.MustPostGroupPath("design"),
		[]domain.Hashtag{domain.MustHashtag("#rebrand"), domain.MustHashtag("#デザイン")},
		domain.ReviewScheduled,
		nil, nil, nil,
		now.Add(-20*time.Hour), now.Add(-20*time.Hour),
	)
	lunch := domain.RestorePost(
		domain.MustPostID(SeedPostLunch),
		domain.MustPostTitle("Team lunch on Friday"),
		domain.MustPostContent("We are doing ramen on Friday, sign up in the thread."),
		charlie.ID(),
		domain.MustPostGroupPath("general"),
		nil,
		domain.ReviewAsIs,
		nil, nil, nil,
		now.Add(-6*time.Hour), now.Add(-6*time.Hour),
	)
	for _, p := range []domain.Post{release, palette, lunch} {
		m.posts[p.ID().String()] = p
		m.order = append(m.order, p.ID().String())
	}
}

// GetPostGroup assembles the group at path: its record, its posts, and
// its direct children (assembled recursively).
func (m *Memory) GetPostGroup(_ context.Context, path domain.PostGroupPath) (domain.PostGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assembleGroup(path)
}

// ListPostGroups returns the root groups, assembled with their children,
// sorted by path.
func (m *Memory) ListPostGroups(_ context.Context) ([]domain.PostGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.groups))
	for path := range m.groups {
		if !strings.Contains(path, "/") {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	groups := make([]domain.PostGroup, 0, len(paths))
	for _, path := range paths {
		group, err := m.assembleGroup(domain.MustPostGroupPath(path))
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// assembleGroup builds a PostGroup from its record, the posts filed under
// its path, and its direct children. Callers must hold at least a read lock.
func (m *Memory) assembleGroup(path domain.PostGroupPath) (domain.PostGroup, error) {
	rec, ok := m.groups[path.String()]
	if !ok {
		return domain.PostGroup{}, usecases.NotFound("post group %q not found", path.String())
	}

	group := domain.NewPostGroup(rec.name, rec.limit)
	for _, id := range m.order {
		post := m.posts[id]
		if post.GroupPath() == path {
			group = group.AddPost(post)
		}
	}

	prefix := path.String() + "/"
	for childPath := range m.groups {
		if !strings.HasPrefix(childPath, prefix) || strings.Contains(childPath[len(prefix):], "/") {
			continue
		}
		child, err := m.assembleGroup(domain.MustPostGroupPath(childPath))
		if err != nil {
			return domain.PostGroup{}, err
		}
		group, err = group.AddChild(child)
		if err != nil {
			return domain.PostGroup{}, usecases.InvalidData("group %q: %v", childPath, err)
		}
	}
	return group, nil
}

// GetPost returns the post with the given id.
func (m *Memory) GetPost(_ context.Context, id domain.PostID) (domain.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id.String()]
	if !ok {
		return domain.Post{}, usecases.NotFound("post %q not found", id.String())
	}
	return post, nil
}

// ListPosts returns the posts filed under groupPath, newest first. A zero
// path lists every post.
func (m *Memory) ListPosts(_ context.Context, groupPath domain.PostGroupPath) ([]domain.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := make([]domain.Post, 0, len(m.order))
	for _, id := range m.order {
		post := m.posts[id]
		if groupPath.IsZero() || post.GroupPath() == groupPath {
			posts = append(posts, post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt().After(posts[j].CreatedAt())
	})
	return posts, nil
}

// CreatePost stores a new post. Unknown group paths are registered on the
// fly with the default noice limit.
func (m *Memory) CreatePost(_ context.Context, post domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.posts[post.ID().String()]; exists {
		return usecases.InvalidData("post %q already exists", post.ID().String())
	}

	m.registerGroupPath(post.GroupPath())
	m.posts[post.ID().String()] = post
	m.order = append(m.order, post.ID().String())
	return nil
}

// registerGroupPath ensures every segment of path has a group record,
// creating missing ones with the default limit. Callers must hold the
// write lock.
func (m *Memory) registerGroupPath(path domain.PostGroupPath) {
	segments := path.Segments()
	for i := range segments {
		key := strings.Join(segments[:i+1], "/")
		if _, ok := m.groups[key]; !ok {
			m.groups[key] = groupRecord{
				name:  domain.MustGroupName(segments[i]),
				limit: domain.DefaultNoiceLimit(),
			}
		}
	}
}

// UpdatePost replaces an existing post.
func (m *Memory) UpdatePost(_ context.Context, post domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[post.ID().String()]; !ok {
		return usecases.NotFound("post %q not found", post.ID().String())
	}
	m.registerGroupPath(post.GroupPath())
	m.posts[post.ID().String()] = post
	return nil
}

// DeletePost removes a post.
func (m *Memory) DeletePost(_ context.Context, id domain.PostID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id.String()]; !ok {
		return usecases.NotFound("post %q not found", id.String())
	}
	delete(m.posts, id.String())
	for i, oid := range m.order {
		if oid == id.String() {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddNoice appends a plain one-point noice from userID to the post.
func (m *Memory) AddNoice(_ context.Context, postID domain.PostID, userID domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[postID.String()]
	if !ok {
		return usecases.NotFound("post %q not found", postID.String())
	}
	noice := domain.NewNoice(userID, postID, domain.MustNoiceAmount(1))
	m.posts[postID.String()] = post.AddNoice(noice)
	return nil
}

// RemoveNoice removes the most recent top-level noice placed by userID.
func (m *Memory) RemoveNoice(_ context.Context, postID domain.PostID, userID domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[postID.String()]
	if !ok {
		return usecases.NotFound("post %q not found", postID.String())
	}

	noices := post.Noices()
	for i := len(noices) - 1; i >= 0; i-- {
		if noices[i].IsFromUser(userID) {
			m.posts[postID.String()] = post.RemoveNoice(noices[i].ID())
			return nil
		}
	}
	return usecases.NotFound("no noice by user %q on post %q", userID.String(), postID.String())
}

// NoiceCount returns the number of top-level noices on the post.
func (m *Memory) NoiceCount(_ context.Context, postID domain.PostID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[postID.String()]
	if !ok {
		return 0, usecases.NotFound("post %q not found", postID.String())
	}
	return post.NoiceCount(), nil
}

// GetUser returns the user with the given id.
func (m *Memory) GetUser(_ context.Context, id domain.UserID) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id.String()]
	if !ok {
		return domain.User{}, usecases.NotFound("user %q not found", id.String())
	}
	return user, nil
}

// ListUsers returns every user, sorted by username.
func (m *Memory) ListUsers(_ context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username().String() < users[j].Username().String()
	})
	return users, nil
}

// UpdateUser replaces an existing user.
func (m *Memory) UpdateUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID().String()]; !ok {
		return usecases.NotFound("user %q not found", user.ID().String())
	}
	m.users[user.ID().String()] = user
	return nil
}

// CreateUser stores a new user. Kept off the BoardStore port; the web
// layer uses it when registering accounts against the memory backend.
func (m *Memory) CreateUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.ID().String()]; exists {
		return usecases.InvalidData("user %q already exists", user.ID().String())
	}
	for _, existing := range m.users {
		if existing.Username() == user.Username() {
			return usecases.InvalidData("username %q is taken", user.Username().String())
		}
	}
	m.users[user.ID().String()] = user
	return nil
}
