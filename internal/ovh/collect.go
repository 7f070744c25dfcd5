package ovh

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Collect fetches the detail entity for every id concurrently and returns
// the results in the same order as ids. All fetches are issued at once,
// one request per id; there is no admission control.
//
// The first fetch failure cancels the context passed to the remaining
// fetches and is returned wrapped with the failing id. Partial results are
// never returned silently.
func Collect[ID comparable, T any](ctx context.Context, ids []ID, fetch func(context.Context, ID) (T, error)) ([]T, error) {
	results := make([]T, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			v, err := fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("ovh: fetch %v: %w", id, err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
