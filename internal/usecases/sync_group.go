package usecases

import (
	"context"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/pkg/log"
)

// GroupScraper defines the interface for reading a group from an
// external page-based backend.
type GroupScraper interface {
	ScrapeGroup(ctx context.Context, path domain.PostGroupPath) (domain.PostGroup, error)
}

// GroupCache defines the interface for caching scraped groups.
type GroupCache interface {
	Get(path domain.PostGroupPath) (domain.PostGroup, bool)
	Set(path domain.PostGroupPath, group domain.PostGroup)
}

// SyncGroupUseCase reads an externally-hosted group with a cache-first
// strategy: cache, then scraper; fresh results are cached and their posts
// persisted into the store.
type SyncGroupUseCase struct {
	cache   GroupCache
	scraper GroupScraper
	store   BoardStore
}

// NewSyncGroupUseCase creates a new SyncGroupUseCase.
func NewSyncGroupUseCase(cache GroupCache, scraper GroupScraper, store BoardStore) *SyncGroupUseCase {
	return &SyncGroupUseCase{cache: cache, scraper: scraper, store: store}
}

// Execute returns the group at path, scraping only on cache miss.
func (uc *SyncGroupUseCase) Execute(ctx context.Context, path domain.PostGroupPath) (domain.PostGroup, error) {
	if group, found := uc.cache.Get(path); found {
		log.GlobalDebugCtx(ctx, "group cache hit", "path", path.String())
		return group, nil
	}

	log.GlobalDebugCtx(ctx, "group cache miss, scraping", "path", path.String())

	group, err := uc.scraper.ScrapeGroup(ctx, path)
	if err != nil {
		return domain.PostGroup{}, err
	}

	uc.cache.Set(path, group)

	// Mirror scraped posts into the store so the rest of the board can
	// reference them by id. Conflicts on re-sync are tolerated.
	for _, post := range group.Posts() {
		if err := uc.store.CreatePost(ctx, post); err != nil {
			log.GlobalWarnCtx(ctx, "could not mirror scraped post",
				"post_id", post.ID().String(), "error", err)
		}
	}

	return group, nil
}
