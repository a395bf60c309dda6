// Package reduce folds a slice of mergeable values into one with bounded
// parallelism.
package reduce

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrEmpty is returned when Tree is called without items.
var ErrEmpty = errors.New("reduce: no items")

// Tree merges items pairwise in rounds until one value remains. Each round runs
// its merges concurrently, at most limit at a time (limit <= 0 means no limit).
//
// merge must return a fresh value and leave both arguments untouched; items
// are never modified. The context is checked before every merge, so a
// cancelled reduction stops after the merges already running.
//
// With a single item, that item is returned as is.
func Tree[T any](ctx context.Context, limit int, items []T, merge func(a, b T) (T, error)) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	level := items
	for len(level) > 1 {
		next := make([]T, (len(level)+1)/2)

		g, gctx := errgroup.WithContext(ctx)
		if limit > 0 {
			g.SetLimit(limit)
		}
		for i := 0; i+1 < len(level); i += 2 {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := merge(level[i], level[i+1])
				if err != nil {
					return err
				}
				next[i/2] = v
				return nil
			})
		}
		// Odd element carries over to the next round.
		if len(level)%2 == 1 {
			next[len(next)-1] = level[len(level)-1]
		}
		if err := g.Wait(); err != nil {
			return zero, err
		}
		level = next
	}
	return level[0], nil
}
