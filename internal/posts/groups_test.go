package posts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/internal/posts"
	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/pkg/cache"
)

type mockGroupStore struct {
	mock.Mock
}

func (m *mockGroupStore) GetGroupBySlug(ctx context.Context, slug string) (repository.Group, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(repository.Group), args.Error(1)
}

func (m *mockGroupStore) GetGroupByID(ctx context.Context, id int64) (repository.Group, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Group), args.Error(1)
}

func (m *mockGroupStore) ListGroups(ctx context.Context) ([]repository.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.Group), args.Error(1)
}

func newGroups(t *testing.T, store posts.GroupStore) *posts.Groups {
	t.Helper()
	bySlug := cache.NewMemory[repository.Group](cache.MemoryConfig{SweepInterval: -1})
	all := cache.NewMemory[[]repository.Group](cache.MemoryConfig{SweepInterval: -1})
	t.Cleanup(func() {
		_ = bySlug.Close()
		_ = all.Close()
	})
	return posts.NewGroups(store, bySlug, all, 0)
}

func TestGroups(t *testing.T) {
	t.Parallel()

	cats := repository.Group{ID: 1, Title: "Cats", Slug: "cats"}
	dogs := repository.Group{ID: 2, Title: "Dogs", Slug: "dogs"}
	ctx := context.Background()

	t.Run("by slug is cached", func(t *testing.T) {
		t.Parallel()

		store := &mockGroupStore{}
		store.On("GetGroupBySlug", mock.Anything, "cats").Return(cats, nil).Once()
		groups := newGroups(t, store)

		for range 3 {
			got, err := groups.BySlug(ctx, "cats")
			require.NoError(t, err)
			assert.Equal(t, cats, got)
		}
		store.AssertExpectations(t)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		t.Parallel()

		store := &mockGroupStore{}
		store.On("GetGroupBySlug", mock.Anything, "birds").Return(repository.Group{}, repository.ErrNotFound).Twice()
		groups := newGroups(t, store)

		for range 2 {
			_, err := groups.BySlug(ctx, "birds")
			require.ErrorIs(t, err, repository.ErrNotFound)
		}
		store.AssertExpectations(t)
	})

	t.Run("by id looks through the list", func(t *testing.T) {
		t.Parallel()

		store := &mockGroupStore{}
		store.On("ListGroups", mock.Anything).Return([]repository.Group{cats, dogs}, nil).Once()
		store.On("GetGroupByID", mock.Anything, int64(3)).Return(repository.Group{}, repository.ErrNotFound).Once()
		groups := newGroups(t, store)

		got, err := groups.ByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, dogs, got)

		_, err = groups.ByID(ctx, 3)
		require.ErrorIs(t, err, repository.ErrNotFound)
		store.AssertExpectations(t)
	})

	t.Run("by id sees groups newer than the cached list", func(t *testing.T) {
		t.Parallel()

		store := &mockGroupStore{}
		store.On("ListGroups", mock.Anything).Return([]repository.Group{cats}, nil).Once()
		groups := newGroups(t, store)

		all, err := groups.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		store.On("GetGroupByID", mock.Anything, int64(2)).Return(dogs, nil).Once()
		store.On("ListGroups", mock.Anything).Return([]repository.Group{cats, dogs}, nil).Once()

		got, err := groups.ByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, dogs, got)

		all, err = groups.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []repository.Group{cats, dogs}, all)
		store.AssertExpectations(t)
	})

	t.Run("invalidate reloads", func(t *testing.T) {
		t.Parallel()

		store := &mockGroupStore{}
		store.On("ListGroups", mock.Anything).Return([]repository.Group{cats}, nil).Once()
		groups := newGroups(t, store)

		all, err := groups.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, groups.Invalidate(ctx))
		store.On("ListGroups", mock.Anything).Return([]repository.Group{cats, dogs}, nil).Once()

		all, err = groups.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		store.AssertExpectations(t)
	})
}
