package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/storelens/backend/config"
	httpDelivery "github.com/storelens/backend/internal/delivery/http"
	"github.com/storelens/backend/internal/infrastructure/cache"
	"github.com/storelens/backend/internal/infrastructure/sqlite"
	"github.com/storelens/backend/internal/logging"
	"github.com/storelens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rec := logging.NewRecorder(os.Stderr, "storelens", cfg.Log.Level, cfg.Log.BufferSize)
	rec.Infof("starting storelens backend v1.0.0")
	rec.Infof("environment: %s, port: %s", cfg.Server.Environment, cfg.Server.Port)

	// Open the catalog store
	store, err := sqlite.Open(cfg.Catalog.DBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to initialize catalog schema: %v", err)
	}
	rec.Infof("catalog store: %s", cfg.Catalog.DBPath)

	// Seed an empty catalog when a seed file is configured
	ctx := context.Background()
	count, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to inspect catalog: %v", err)
	}
	if count == 0 && cfg.Catalog.SeedFile != "" {
		inserted, err := store.Seed(ctx, cfg.Catalog.SeedFile)
		if err != nil {
			log.Fatalf("Failed to seed catalog from %s: %v", cfg.Catalog.SeedFile, err)
		}
		rec.Infof("seeded catalog with %d products from %s", inserted, cfg.Catalog.SeedFile)
	} else {
		rec.Infof("catalog holds %d products", count)
	}

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	// Initialize usecase layer
	searchService := usecase.NewSearchService(store, memoryCache, rec, usecase.SearchServiceConfig{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		SuggestLimit: cfg.Search.SuggestLimit,
		CacheTTL:     cfg.Search.CacheTTL,
	})

	rec.Infof("search: default_limit=%d max_limit=%d suggest_limit=%d cache_ttl=%s",
		cfg.Search.DefaultLimit, cfg.Search.MaxLimit, cfg.Search.SuggestLimit, cfg.Search.CacheTTL)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, store, rec)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	rec.Infof("server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
