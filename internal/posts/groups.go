package posts

import (
	"context"
	"errors"
	"time"

	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/pkg/cache"
)

// DefaultGroupTTL bounds how stale a cached group may get. Groups only
// change through the CLI, which also clears the cache.
const DefaultGroupTTL = 5 * time.Minute

const allGroupsKey = "all"

// GroupStore loads groups from the database.
type GroupStore interface {
	GetGroupBySlug(ctx context.Context, slug string) (repository.Group, error)
	GetGroupByID(ctx context.Context, id int64) (repository.Group, error)
	ListGroups(ctx context.Context) ([]repository.Group, error)
}

// Groups is a read-through cache over GroupStore.
type Groups struct {
	store  GroupStore
	bySlug cache.Cache[repository.Group]
	all    cache.Cache[[]repository.Group]
	ttl    time.Duration
}

func NewGroups(store GroupStore, bySlug cache.Cache[repository.Group], all cache.Cache[[]repository.Group], ttl time.Duration) *Groups {
	if ttl <= 0 {
		ttl = DefaultGroupTTL
	}
	return &Groups{store: store, bySlug: bySlug, all: all, ttl: ttl}
}

// BySlug returns repository.ErrNotFound for unknown slugs. Misses are
// not cached, so a group created later shows up immediately.
func (g *Groups) BySlug(ctx context.Context, slug string) (repository.Group, error) {
	return cache.GetOrSet(ctx, g.bySlug, slug, func(ctx context.Context) (repository.Group, time.Duration, error) {
		grp, err := g.store.GetGroupBySlug(ctx, slug)
		return grp, g.ttl, err
	})
}

// All lists groups in display order, for the post form's choices.
func (g *Groups) All(ctx context.Context) ([]repository.Group, error) {
	return cache.GetOrSet(ctx, g.all, allGroupsKey, func(ctx context.Context) ([]repository.Group, time.Duration, error) {
		groups, err := g.store.ListGroups(ctx)
		return groups, g.ttl, err
	})
}

// ByID finds a group among All. An id missing from the cached list is
// looked up in the store, and a hit there drops the stale list.
func (g *Groups) ByID(ctx context.Context, id int64) (repository.Group, error) {
	groups, err := g.All(ctx)
	if err != nil {
		return repository.Group{}, err
	}
	for _, grp := range groups {
		if grp.ID == id {
			return grp, nil
		}
	}

	grp, err := g.store.GetGroupByID(ctx, id)
	if err != nil {
		return repository.Group{}, err
	}
	if err := g.all.Delete(ctx, allGroupsKey); err != nil {
		return repository.Group{}, err
	}
	return grp, nil
}

// Invalidate drops every cached group.
func (g *Groups) Invalidate(ctx context.Context) error {
	return errors.Join(g.bySlug.Clear(ctx), g.all.Clear(ctx))
}
