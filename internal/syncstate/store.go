// Package syncstate keeps the outcome of the last catalog sync per collection
// in redis so that the server and later runs can report on it.
package syncstate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "vwheritage:sync:"
	summaryTTL = 7 * 24 * time.Hour
)

type RunSummary struct {
	Collection string    `json:"collection"`
	Rows       int       `json:"rows"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Err        string    `json:"error,omitempty"`
}

func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

type Store struct {
	Client *redis.Client
}

func (s *Store) Save(ctx context.Context, summary RunSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, keyPrefix+summary.Collection, b, summaryTTL).Err()
}

// Last returns the most recent summary for collection, or nil if none is stored.
func (s *Store) Last(ctx context.Context, collection string) (*RunSummary, error) {
	val, err := s.Client.Get(ctx, keyPrefix+collection).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary RunSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
