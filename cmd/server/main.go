package main

import (
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/hckaye/noice-board/internal/adapters/cache"
	"github.com/hckaye/noice-board/internal/adapters/jira"
	"github.com/hckaye/noice-board/internal/adapters/scraper"
	"github.com/hckaye/noice-board/internal/adapters/store"
	"github.com/hckaye/noice-board/internal/adapters/web"
	"github.com/hckaye/noice-board/internal/config"
	"github.com/hckaye/noice-board/internal/usecases"
	"github.com/hckaye/noice-board/pkg/log"
	"github.com/hckaye/noice-board/pkg/log/transporters"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.Info
	}
	logger := log.New(level, transporters.NewStdout())
	log.SetDefault(logger)
	defer logger.Close()

	// Board store backend
	var boardStore usecases.BoardStore
	switch cfg.StoreBackend {
	case config.BackendJira:
		client := jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.Username, cfg.Jira.Token)
		boardStore = jira.NewStore(client)
		log.GlobalInfo("using jira backend", "base_url", cfg.Jira.BaseURL)
	default:
		boardStore = store.NewSeededMemory()
		log.GlobalInfo("using in-memory backend")
	}

	// Optional Confluence scraper
	var syncUC *usecases.SyncGroupUseCase
	if cfg.ScraperEnabled() {
		selectors, err := scraper.LoadSelectors(cfg.Confluence.SelectorsPath)
		if err != nil {
			log.GlobalError("could not load selectors", "error", err)
			os.Exit(1)
		}
		browserPool, err := scraper.NewBrowserPool(nil)
		if err != nil {
			log.GlobalError("could not start browser pool", "error", err)
			os.Exit(1)
		}
		defer browserPool.Close()

		groupScraper := scraper.NewConfluenceScraper(browserPool, selectors, cfg.Confluence.BaseURL)
		groupCache := cache.NewMemoryCache(cfg.CacheTTL)
		syncUC = usecases.NewSyncGroupUseCase(groupCache, groupScraper, boardStore)
	}

	// Use cases
	boardUC := usecases.NewGetBoardUseCase(boardStore)
	createUC := usecases.NewCreatePostUseCase(boardStore)
	giveUC := usecases.NewGiveNoiceUseCase(boardStore)
	reactUC := usecases.NewReactToNoiceUseCase(boardStore)
	commentUC := usecases.NewCommentPostUseCase(boardStore)
	reviewUC := usecases.NewReviewPostUseCase(boardStore)
	profileUC := usecases.NewUpdateProfileUseCase(boardStore)

	rateLimiter := web.NewRateLimiter(cfg.SyncLimit, cfg.SyncWindow)
	handlers := web.NewHandlers(
		boardUC, createUC, giveUC, reactUC, commentUC, reviewUC, profileUC,
		syncUC, boardStore, rateLimiter,
	)

	app := fiber.New(fiber.Config{
		AppName: "Noice Board",
	})

	app.Use(recover.New())
	app.Use(requestid.New(web.RequestIDConfig()))
	app.Use(web.RequestIDToContextMiddleware())
	app.Use(web.RequestLoggerMiddleware())

	web.SetupRoutes(app, handlers)

	go func() {
		log.GlobalInfo("starting noice board", "port", cfg.Port, "backend", cfg.StoreBackend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.GlobalError("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.GlobalInfo("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.GlobalError("shutdown failed", "error", err)
	}
}
