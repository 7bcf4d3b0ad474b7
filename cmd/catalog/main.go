package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"vwheritage/internal/adapter"
	"vwheritage/internal/catalog"
	"vwheritage/internal/config"
	"vwheritage/internal/model"
)

// go run ./cmd/catalog -mode=find -ids="1234,5678"
// go run ./cmd/catalog -mode=sku -ids="111-201"
// go run ./cmd/catalog -mode=images -ids="1234"
// go run ./cmd/catalog -mode=infos -by=sku
func main() {
	os.Exit(run())
}

func run() int {
	mode := flag.String("mode", "find", "find, sku, images or infos")
	idsArg := flag.String("ids", "", "comma separated product ids or skus")
	by := flag.String("by", "id", "infos key: id or sku")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	client := catalog.NewClient(cfg, catalog.WithLogger(logger))
	store := adapter.New(client, adapter.WithLogger(logger))

	var (
		records []model.Record
		err     error
	)
	switch *mode {
	case "find":
		records, err = store.Find(ctx, adapter.CollectionProduct, adapter.Criteria{Where: map[string]any{"id": *idsArg}})
	case "sku":
		records, err = store.Find(ctx, adapter.CollectionProductSKU, adapter.Criteria{Where: map[string]any{"sku": *idsArg}})
	case "images":
		records, err = store.Find(ctx, adapter.CollectionImage, adapter.Criteria{Where: map[string]any{"id": *idsArg}})
	case "infos":
		collection := adapter.CollectionProduct
		if *by == "sku" {
			collection = adapter.CollectionProductSKU
		}
		records, err = store.Infos(ctx, collection)
	default:
		logger.Error("unknown mode", "mode", *mode)
		return 2
	}
	if err != nil {
		logger.Error("catalog request failed", "mode", *mode, "error", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		logger.Error("failed to write output", "error", err)
		return 1
	}
	logger.Info("done", "mode", *mode, "rows", len(records))
	return 0
}
