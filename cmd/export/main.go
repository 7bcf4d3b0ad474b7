package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"

	"vwheritage/internal/adapter"
	"vwheritage/internal/catalog"
	"vwheritage/internal/config"
	"vwheritage/internal/db"
	"vwheritage/internal/export"
	"vwheritage/internal/observability"
	"vwheritage/internal/repository"
	"vwheritage/internal/syncstate"
)

func main() {
	os.Exit(run())
}

func run() int {
	workers := flag.Int("workers", 8, "concurrent snapshot writers")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	dbConn, err := db.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return 1
	}
	defer dbConn.Close()

	repo := &repository.ProductRepository{DB: dbConn}
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare snapshot table", "error", err)
		return 1
	}

	var syncs *syncstate.Store
	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		defer redisClient.Close()
		syncs = &syncstate.Store{Client: redisClient}
	}

	store := adapter.New(catalog.NewClient(cfg, catalog.WithLogger(logger)), adapter.WithLogger(logger))

	summary := syncstate.RunSummary{Collection: adapter.CollectionProduct, StartedAt: time.Now()}
	records, err := store.Infos(ctx, adapter.CollectionProduct)
	if err != nil {
		logger.Error("failed to fetch catalog", "error", err)
		summary.Err = err.Error()
	} else {
		res := export.Run(ctx, records, repo, *workers, logger)
		summary.Rows = res.Processed
		logger.Info("export finished", "records", len(records), "saved", res.Processed, "failed", res.Failed)
	}
	summary.FinishedAt = time.Now()

	if syncs != nil {
		if err := syncs.Save(context.Background(), summary); err != nil {
			logger.Error("failed to record sync", "error", err)
		}
	}
	if summary.Err != "" {
		return 1
	}
	return 0
}
