package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"vwheritage/internal/adapter"
	"vwheritage/internal/api"
	"vwheritage/internal/catalog"
	"vwheritage/internal/config"
	"vwheritage/internal/observability"
	"vwheritage/internal/syncstate"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	client := catalog.NewClient(cfg, catalog.WithLogger(logger))
	store := adapter.New(client, adapter.WithLogger(logger))
	for _, name := range []string{adapter.CollectionProduct, adapter.CollectionProductSKU, adapter.CollectionImage} {
		if err := store.RegisterCollection(context.Background(), name); err != nil {
			logger.Error("failed to register collection", "collection", name, "error", err)
			os.Exit(1)
		}
	}

	var syncs api.SyncReporter
	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		defer redisClient.Close()
		syncs = &syncstate.Store{Client: redisClient}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewHandler(store, syncs, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("catalog api listening", "addr", cfg.HTTPAddr, "metrics_port", cfg.MetricsPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	_ = store.Teardown(shutdownCtx)
}
