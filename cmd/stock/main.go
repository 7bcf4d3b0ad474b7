package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"vwheritage/internal/adapter"
	"vwheritage/internal/catalog"
	"vwheritage/internal/config"
	"vwheritage/internal/db"
	"vwheritage/internal/repository"
	"vwheritage/internal/stock"
	"vwheritage/internal/worker"
)

func main() {
	os.Exit(run())
}

func run() int {
	workers := flag.Int("workers", 8, "concurrent stock writers")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer pool.Close()

	repo := &repository.StockRepository{DB: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare stock table", "error", err)
		return 1
	}

	store := adapter.New(catalog.NewClient(cfg, catalog.WithLogger(logger)), adapter.WithLogger(logger))

	logger.Info("fetching catalog stock")
	records, err := store.Infos(ctx, adapter.CollectionProduct)
	if err != nil {
		logger.Error("failed to fetch catalog", "error", err)
		return 1
	}

	levels := make([]stock.Level, 0, len(records))
	for _, r := range records {
		if l := stock.FromRecord(r); l.SKU != "" {
			levels = append(levels, l)
		}
	}

	res := worker.Run(ctx, levels, *workers, repo.Upsert, func(l stock.Level, err error) {
		logger.Error("failed to update stock", "sku", l.SKU, "error", err)
	})
	logger.Info("stock update finished", "levels", len(levels), "updated", res.Processed, "failed", res.Failed)
	return 0
}
