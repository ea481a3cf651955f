package scraper

import (
	"context"
	"errors"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/pkg/log"

	"github.com/chromedp/chromedp"
)

// Scraper failure modes.
var (
	ErrScrapeFailed = errors.New("scraper: could not load group page")
	ErrPageEmpty    = errors.New("scraper: group page has no usable content")
)

// ConfluenceScraper reads a group page from a Confluence-style wiki and
// turns it into a domain.PostGroup. The page body carries the group's
// noice limit, page comments are posts, reply comments are post comments
// or review verdicts, and likes are noices.
type ConfluenceScraper struct {
	pool      *BrowserPool
	selectors *SelectorConfig
	baseURL   string
}

// NewConfluenceScraper creates a new Confluence scraper rooted at baseURL.
func NewConfluenceScraper(pool *BrowserPool, selectors *SelectorConfig, baseURL string) *ConfluenceScraper {
	return &ConfluenceScraper{
		pool:      pool,
		selectors: selectors,
		baseURL:   baseURL,
	}
}

// ScrapeGroup fetches and parses the group page at path.
func (s *ConfluenceScraper) ScrapeGroup(ctx context.Context, path domain.PostGroupPath) (domain.PostGroup, error) {
	url := s.baseURL + "/display/" + path.String()

	var html string

	err := s.pool.WithTab(ctx, func(tab context.Context) error {
		return chromedp.Run(tab,
			chromedp.Navigate(url),
			chromedp.WaitVisible(s.selectors.GetPageTitle(), chromedp.ByQuery),
			chromedp.OuterHTML("html", &html),
		)
	})
	if err != nil {
		log.GlobalWarnCtx(ctx, "group page load failed", "path", path.String(), "error", err)
		return domain.PostGroup{}, ErrScrapeFailed
	}

	group, err := parseGroupHTML(html, path)
	if err != nil {
		return domain.PostGroup{}, err
	}

	log.GlobalDebugCtx(ctx, "group page scraped",
		"path", path.String(), "posts", group.PostCount())
	return group, nil
}
