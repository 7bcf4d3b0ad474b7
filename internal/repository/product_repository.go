package repository

import (
	"context"
	"database/sql"

	"vwheritage/internal/model"
)

const productSchema = `
CREATE TABLE IF NOT EXISTS vwh_product_snapshot (
	id          UUID PRIMARY KEY,
	product_id  TEXT NOT NULL UNIQUE,
	sku         TEXT NOT NULL,
	sku_clean   TEXT NOT NULL,
	name        TEXT NOT NULL,
	content     TEXT NOT NULL,
	synced_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ProductRepository stores the plain-text product snapshots written by the
// export command.
type ProductRepository struct {
	DB *sql.DB
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, productSchema)
	return err
}

func (r *ProductRepository) Save(ctx context.Context, p model.RawProduct) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM vwh_product_snapshot WHERE product_id = $1)", p.ProductID,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE vwh_product_snapshot
			SET sku = $1, sku_clean = $2, name = $3, content = $4, synced_at = now()
			WHERE product_id = $5
		`, p.SKU, p.SKUClean, p.Name, p.Content, p.ProductID)
	} else {
		_, err = r.DB.ExecContext(ctx, `
			INSERT INTO vwh_product_snapshot
			(id, product_id, sku, sku_clean, name, content)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.ProductID, p.SKU, p.SKUClean, p.Name, p.Content)
	}
	return err
}

func (r *ProductRepository) List(ctx context.Context) ([]model.RawProduct, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, sku, sku_clean, name, content
		FROM vwh_product_snapshot
		ORDER BY product_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RawProduct
	for rows.Next() {
		var p model.RawProduct
		if err := rows.Scan(&p.ID, &p.ProductID, &p.SKU, &p.SKUClean, &p.Name, &p.Content); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
