package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vwheritage/internal/stock"
)

func TestStockRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping postgres test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	repo := &StockRepository{DB: pool}
	require.NoError(t, repo.EnsureSchema(ctx))

	level := stock.Level{ProductID: "test-1", SKU: "TEST-SKU-1", DueWeeks: 3}
	require.NoError(t, repo.Upsert(ctx, level))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM vwh_stock WHERE sku = $1", level.SKU)
	})

	due, err := repo.ListByStatus(ctx, stock.StatusDue)
	require.NoError(t, err)
	assert.Contains(t, due, level)

	level.FreeQuantity = 4
	require.NoError(t, repo.Upsert(ctx, level))

	inStock, err := repo.ListByStatus(ctx, stock.StatusInStock)
	require.NoError(t, err)
	assert.Contains(t, inStock, level)
}
