package syncstate

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis test")
	}
	client := redis.NewClient(&redis.Options{Addr: url})
	t.Cleanup(func() { client.Close() })
	return &Store{Client: client}
}

func TestSaveAndLast(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	summary := RunSummary{
		Collection: "test-vwheritageproduct",
		Rows:       200,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}
	require.NoError(t, store.Save(ctx, summary))
	t.Cleanup(func() { store.Client.Del(context.Background(), keyPrefix+summary.Collection) })

	got, err := store.Last(ctx, summary.Collection)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 200, got.Rows)
	assert.Equal(t, 3*time.Second, got.Duration())
	assert.Empty(t, got.Err)
}

func TestLastMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Last(context.Background(), "test-never-synced")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDuration(t *testing.T) {
	start := time.Now()
	s := RunSummary{StartedAt: start, FinishedAt: start.Add(time.Minute)}
	assert.Equal(t, time.Minute, s.Duration())
}
