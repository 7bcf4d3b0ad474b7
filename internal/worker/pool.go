package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultWorkers = 8

type Result struct {
	Processed int
	Failed    int
}

// Run feeds items to n goroutines calling fn. Failures are counted and handed
// to onError when it is set. Items not yet started when ctx is done are
// neither processed nor counted.
func Run[T any](ctx context.Context, items []T, n int, fn func(context.Context, T) error, onError func(T, error)) Result {
	if n <= 0 {
		n = defaultWorkers
	}

	jobs := make(chan T)
	var wg sync.WaitGroup
	var processed, failed atomic.Int64

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				if err := fn(ctx, item); err != nil {
					failed.Add(1)
					if onError != nil {
						onError(item, err)
					}
					continue
				}
				processed.Add(1)
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case jobs <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return Result{Processed: int(processed.Load()), Failed: int(failed.Load())}
}
