package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/hckaye/noice-board/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries map[string]domain.PostGroup
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.PostGroup)}
}

func (c *fakeCache) Get(path domain.PostGroupPath) (domain.PostGroup, bool) {
	group, ok := c.entries[path.String()]
	return group, ok
}

func (c *fakeCache) Set(path domain.PostGroupPath, group domain.PostGroup) {
	c.entries[path.String()] = group
	c.sets++
}

type fakeScraper struct {
	group domain.PostGroup
	err   error
	calls int
}

func (s *fakeScraper) ScrapeGroup(_ context.Context, _ domain.PostGroupPath) (domain.PostGroup, error) {
	s.calls++
	if s.err != nil {
		return domain.PostGroup{}, s.err
	}
	return s.group, nil
}

func scrapedGroup(t *testing.T) domain.PostGroup {
	t.Helper()
	group := domain.NewPostGroup(domain.MustGroupName("tech"), domain.MustNoiceLimit(50))
	post := domain.NewPost(
		domain.MustPostTitle("Scraped post"),
		domain.MustPostContent("Pulled from the wiki."),
		domain.GenerateUserID(),
		domain.InGroup(domain.MustPostGroupPath("tech")),
	)
	return group.AddPost(post)
}

func TestSyncGroup_CacheMiss_ScrapesAndMirrors(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	scraper := &fakeScraper{group: scrapedGroup(t)}
	uc := NewSyncGroupUseCase(cache, scraper, store)

	group, err := uc.Execute(context.Background(), domain.MustPostGroupPath("tech"))

	require.NoError(t, err)
	require.Equal(t, 1, scraper.calls)
	require.Equal(t, 1, cache.sets)
	require.Equal(t, 1, group.PostCount())
	require.Len(t, store.posts, 1, "scraped posts are mirrored into the store")
}

func TestSyncGroup_CacheHit_SkipsScraper(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	scraper := &fakeScraper{group: scrapedGroup(t)}
	uc := NewSyncGroupUseCase(cache, scraper, store)

	path := domain.MustPostGroupPath("tech")
	cache.Set(path, scrapedGroup(t))
	cache.sets = 0

	_, err := uc.Execute(context.Background(), path)

	require.NoError(t, err)
	require.Zero(t, scraper.calls)
	require.Empty(t, store.posts, "cache hits do not touch the store")
}

func TestSyncGroup_ScraperFailure_Propagates(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	scraper := &fakeScraper{err: errors.New("page unreachable")}
	uc := NewSyncGroupUseCase(cache, scraper, store)

	_, err := uc.Execute(context.Background(), domain.MustPostGroupPath("tech"))

	require.Error(t, err)
	require.Zero(t, cache.sets, "failed scrapes are not cached")
}

func TestSyncGroup_MirrorConflict_IsTolerated(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	group := scrapedGroup(t)
	scraper := &fakeScraper{group: group}
	uc := NewSyncGroupUseCase(cache, scraper, store)

	// The scraped post already exists in the store.
	store.putPost(group.Posts()[0])

	_, err := uc.Execute(context.Background(), domain.MustPostGroupPath("tech"))

	require.NoError(t, err, "create conflicts on re-sync are logged, not fatal")
}

func TestGetBoard_PassesThroughStore(t *testing.T) {
	store, post, _ := boardFixture(t, 10, 0)
	uc := NewGetBoardUseCase(store)

	got, err := uc.GetPost(context.Background(), post.ID())
	require.NoError(t, err)
	require.True(t, got.Equal(post))

	group, err := uc.GetGroup(context.Background(), domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Equal(t, 1, group.PostCount())

	posts, err := uc.ListPosts(context.Background(), domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)

	groups, err := uc.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
}
