package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vwheritage/internal/model"
)

func newMockRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &ProductRepository{DB: db}, mock
}

var snapshot = model.RawProduct{
	ID:        "7f1c0b5e-2a43-4d7e-9b1a-3f6f8c2d9e10",
	ProductID: "42",
	SKU:       "111-201",
	SKUClean:  "111201",
	Name:      "Door seal",
	Content:   "Door seal\n\n",
}

func TestSaveInsertsNewSnapshot(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM vwh_product_snapshot WHERE product_id = $1)")).
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO vwh_product_snapshot").
		WithArgs(snapshot.ID, "42", "111-201", "111201", "Door seal", snapshot.Content).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUpdatesExistingSnapshot(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE vwh_product_snapshot").
		WithArgs("111-201", "111201", "Door seal", snapshot.Content, "42").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePropagatesLookupError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").WillReturnError(assert.AnError)

	assert.ErrorIs(t, repo.Save(context.Background(), snapshot), assert.AnError)
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, product_id, sku, sku_clean, name, content").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "sku", "sku_clean", "name", "content"}).
			AddRow(snapshot.ID, "42", "111-201", "111201", "Door seal", snapshot.Content))

	list, err := repo.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.RawProduct{snapshot}, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS vwh_product_snapshot").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
