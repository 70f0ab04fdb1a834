package ports

import "context"

// Port: a persistent cache of resolved routes keyed by waypoint
// sequence. Keys are expected to be consistent (already normalized)
// by the caller.
type RouteCache interface {
	// Get returns the cached route for the key, reporting a miss with
	// ok=false rather than an error.
	Get(ctx context.Context, key string) (result *RouteResult, ok bool, err error)
	// Put stores or replaces the cached route for the key.
	Put(ctx context.Context, key string, result *RouteResult) error
}
