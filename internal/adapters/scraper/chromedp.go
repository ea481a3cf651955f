// Package scraper reads noice board groups out of Confluence-style wiki
// pages with a headless Chrome instance.
package scraper

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/hckaye/noice-board/pkg/log"

	"github.com/chromedp/chromedp"
)

// ErrPoolClosed is returned by WithTab after Close.
var ErrPoolClosed = errors.New("scraper: browser pool is closed")

// browserFlags keeps Chrome lean enough for a small host. Sync requests
// are already rate limited upstream, so one process is all we run.
func browserFlags() []chromedp.ExecAllocatorOption {
	boolFlags := []string{
		"headless",
		"no-sandbox",
		"disable-setuid-sandbox",
		"disable-dev-shm-usage",
		"disable-gpu",
		"disable-extensions",
		"disable-sync",
		"disable-background-networking",
		"disable-default-apps",
		"disable-notifications",
		"disable-component-update",
		"mute-audio",
		"no-first-run",
	}

	opts := chromedp.DefaultExecAllocatorOptions[:]
	for _, name := range boolFlags {
		opts = append(opts, chromedp.Flag(name, true))
	}
	opts = append(opts, chromedp.Flag("disable-features", "Translate,BackForwardCache"))

	if path := os.Getenv("CHROME_PATH"); path != "" {
		log.GlobalInfo("browser pool using custom chrome path", "path", path)
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}

// BrowserPool owns one Chrome process and hands out tabs one at a time.
// A tab that fails its health check triggers a full Chrome restart.
type BrowserPool struct {
	opts []chromedp.ExecAllocatorOption

	mu      sync.Mutex
	browser context.Context
	stop    context.CancelFunc
	closed  bool

	slot chan struct{}
}

// NewBrowserPool starts Chrome and returns the pool. Extra allocator
// options are applied on top of the built-in flag set.
func NewBrowserPool(extra []chromedp.ExecAllocatorOption) (*BrowserPool, error) {
	p := &BrowserPool{
		opts: append(browserFlags(), extra...),
		slot: make(chan struct{}, 1),
	}
	if err := p.restart(); err != nil {
		return nil, err
	}
	return p, nil
}

// restart tears down any running Chrome and launches a fresh one.
func (p *BrowserPool) restart() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	if p.stop != nil {
		p.stop()
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), p.opts...)
	browser, _ := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browser); err != nil {
		cancel()
		return err
	}

	p.browser = browser
	p.stop = cancel
	log.GlobalInfo("browser pool chrome started")
	return nil
}

// newTab opens a tab on the current browser, restarting Chrome once when
// the browser turns out to be dead.
func (p *BrowserPool) newTab() (context.Context, context.CancelFunc, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, nil, ErrPoolClosed
	}
	tab, cancel := chromedp.NewContext(p.browser)
	p.mu.Unlock()

	if err := chromedp.Run(tab); err == nil {
		return tab, cancel, nil
	}
	cancel()

	log.GlobalWarn("browser pool tab unhealthy, restarting chrome")
	if err := p.restart(); err != nil {
		return nil, nil, err
	}

	p.mu.Lock()
	tab, cancel = chromedp.NewContext(p.browser)
	p.mu.Unlock()
	return tab, cancel, nil
}

// WithTab runs fn with exclusive use of a browser tab. Waiting for the
// slot honors ctx, so a sync deadline cannot pile requests up behind a
// slow page.
func (p *BrowserPool) WithTab(ctx context.Context, fn func(tab context.Context) error) error {
	select {
	case p.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.slot }()

	tab, cancel, err := p.newTab()
	if err != nil {
		return err
	}
	defer cancel()

	return fn(tab)
}

// Close shuts Chrome down. The pool cannot be reused afterwards.
func (p *BrowserPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.stop != nil {
		p.stop()
		log.GlobalInfo("browser pool chrome stopped")
	}
}
