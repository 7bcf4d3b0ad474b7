package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"vwheritage/internal/stock"
)

const stockSchema = `
CREATE TABLE IF NOT EXISTS vwh_stock (
	sku           TEXT PRIMARY KEY,
	product_id    TEXT NOT NULL,
	free_quantity INTEGER NOT NULL,
	due_weeks     INTEGER NOT NULL,
	special_order BOOLEAN NOT NULL,
	status        TEXT NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type StockRepository struct {
	DB *pgxpool.Pool
}

func (r *StockRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, stockSchema)
	return err
}

func (r *StockRepository) Upsert(ctx context.Context, l stock.Level) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO vwh_stock (sku, product_id, free_quantity, due_weeks, special_order, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sku) DO UPDATE
		SET product_id = EXCLUDED.product_id,
		    free_quantity = EXCLUDED.free_quantity,
		    due_weeks = EXCLUDED.due_weeks,
		    special_order = EXCLUDED.special_order,
		    status = EXCLUDED.status,
		    updated_at = now()
	`, l.SKU, l.ProductID, l.FreeQuantity, l.DueWeeks, l.SpecialOrder, l.Status())
	return err
}

// ListByStatus returns the stored levels with the given status, by sku.
func (r *StockRepository) ListByStatus(ctx context.Context, status string) ([]stock.Level, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT sku, product_id, free_quantity, due_weeks, special_order
		FROM vwh_stock
		WHERE status = $1
		ORDER BY sku
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []stock.Level
	for rows.Next() {
		var l stock.Level
		if err := rows.Scan(&l.SKU, &l.ProductID, &l.FreeQuantity, &l.DueWeeks, &l.SpecialOrder); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
