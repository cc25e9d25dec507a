// Package workers bounds fan-out to remote sources.
package workers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/spigell/vc-sourcer/internal/utils"
)

const (
	DefaultBatchSize   = 10
	DefaultConcurrency = 5
	DefaultBatchDelay  = 100 * time.Millisecond
)

var wait = utils.WaitFor

// Outcome is the result of one item. Outcomes keep the order of the input items.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Batch processes items in consecutive batches of size, running each batch
// concurrently and pausing delay between batches. Item errors are recorded
// in the outcome and never stop the run. A cancelled context stops before
// the next batch and its error is returned with the outcomes gathered so far.
func Batch[T, R any](ctx context.Context, items []T, size int, delay time.Duration, fn func(context.Context, T) (R, error)) ([]Outcome[R], error) {
	if size <= 0 {
		size = DefaultBatchSize
	}

	out := make([]Outcome[R], len(items))
	for start := 0; start < len(items); start += size {
		if start > 0 {
			if err := wait(ctx, delay); err != nil {
				return out[:start], err
			}
		}
		if err := ctx.Err(); err != nil {
			return out[:start], err
		}

		end := min(start+size, len(items))
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				v, err := fn(ctx, items[i])
				out[i] = Outcome[R]{Value: v, Err: err}
				return nil
			})
		}
		_ = g.Wait()
	}
	return out, nil
}

// Bounded runs fn over all items with at most limit in flight. A non-nil
// limiter is waited on before each call. Items not started because the
// context ended carry the context error.
func Bounded[T, R any](ctx context.Context, items []T, limit int, limiter *rate.Limiter, fn func(context.Context, T) (R, error)) []Outcome[R] {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	out := make([]Outcome[R], len(items))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					out[i].Err = err
					return nil
				}
			} else if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}

			v, err := fn(ctx, item)
			out[i] = Outcome[R]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
