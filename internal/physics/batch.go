package physics

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of rays handed to one goroutine.
const minChunk = 16

// CastAll casts every ray against colliders in parallel and returns the
// results in ray order. Colliders must not be mutated while it runs.
func CastAll(ctx context.Context, rays []Ray, colliders []Collider, maxLength float64) ([]Result, error) {
	results := make([]Result, len(rays))
	if len(rays) == 0 {
		return results, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := max((len(rays)+workers-1)/workers, minChunk)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(rays); start += chunk {
		end := min(start+chunk, len(rays))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = RaycastWithin(rays[i], colliders, maxLength)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
