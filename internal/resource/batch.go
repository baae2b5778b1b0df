package resource

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch issues every fn before waiting on any of them. The first error
// cancels the shared context and is returned; callers must only publish
// their partial results when Batch returns nil.
func Batch(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			return fn(gCtx)
		})
	}
	return g.Wait()
}
