// Package export turns catalog detail records into plain-text snapshots and
// hands them to a store.
package export

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vwheritage/internal/catalog"
	"vwheritage/internal/model"
	"vwheritage/internal/worker"
)

type Saver interface {
	Save(ctx context.Context, p model.RawProduct) error
}

// Snapshot builds the stored form of one detail record. Records without an
// id fall back to their sku as product id.
func Snapshot(r model.Record) model.RawProduct {
	productID := r.String("id")
	if productID == "" {
		productID = r.String("sku")
	}
	return model.RawProduct{
		ID:        uuid.New().String(),
		ProductID: productID,
		SKU:       r.String("sku"),
		SKUClean:  r.String("sku_clean"),
		Name:      r.String("name"),
		Content:   catalog.ProductToText(r),
	}
}

// Run saves a snapshot of every record that carries an id or sku.
func Run(ctx context.Context, records []model.Record, saver Saver, workers int, logger *slog.Logger) worker.Result {
	snapshots := make([]model.RawProduct, 0, len(records))
	for _, r := range records {
		s := Snapshot(r)
		if s.ProductID == "" {
			logger.Debug("skipping record without identifier", "name", s.Name)
			continue
		}
		snapshots = append(snapshots, s)
	}

	return worker.Run(ctx, snapshots, workers, saver.Save, func(p model.RawProduct, err error) {
		logger.Error("failed to save snapshot", "product_id", p.ProductID, "error", err)
	})
}
