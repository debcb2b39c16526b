// Package cache provides a typed cache interface with in-memory and
// Redis backends, plus GetOrSet for read-through loading with
// stampede protection.
//
//	groups := cache.NewMemory[repository.Group](cache.MemoryConfig{DefaultTTL: 5 * time.Minute})
//	g, err := cache.GetOrSet(ctx, groups, "slug:"+slug, func(ctx context.Context) (repository.Group, time.Duration, error) {
//		g, err := store.GetGroupBySlug(ctx, slug)
//		return g, 0, err
//	})
package cache
