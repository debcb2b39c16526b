// Package testutil provides in-memory stand-ins for the Postgres stores
// so handlers can be tested through the full router.
package testutil

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yatube-go/yatube/internal/repository"
)

var _ repository.Querier = (*Store)(nil)

// Store implements the repository queries the handlers use.
type Store struct {
	mu     sync.Mutex
	users  []repository.User
	groups []repository.Group
	posts  []repository.Post
	nextID int64
	now    func() time.Time
}

func NewStore() *Store {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	return &Store{
		// Strictly increasing timestamps keep ordering deterministic.
		now: func() time.Time {
			tick++
			return start.Add(time.Duration(tick) * time.Minute)
		},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) CreateUser(_ context.Context, arg repository.CreateUserParams) (repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == arg.Username {
			return repository.User{}, repository.ErrDuplicate
		}
	}
	u := repository.User{
		ID:           uuid.New(),
		Username:     arg.Username,
		Email:        arg.Email,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    s.now(),
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userWhere(func(u repository.User) bool { return u.Username == username })
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userWhere(func(u repository.User) bool { return u.ID == id })
}

func (s *Store) userWhere(match func(repository.User) bool) (repository.User, error) {
	i := slices.IndexFunc(s.users, match)
	if i < 0 {
		return repository.User{}, repository.ErrNotFound
	}
	return s.users[i], nil
}

func (s *Store) CreateGroup(_ context.Context, arg repository.CreateGroupParams) (repository.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.groups, func(g repository.Group) bool { return g.Slug == arg.Slug }) {
		return repository.Group{}, repository.ErrDuplicate
	}
	g := repository.Group{ID: s.id(), Title: arg.Title, Slug: arg.Slug, Description: arg.Description}
	s.groups = append(s.groups, g)
	return g, nil
}

func (s *Store) GetGroupBySlug(_ context.Context, slug string) (repository.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.groups, func(g repository.Group) bool { return g.Slug == slug })
	if i < 0 {
		return repository.Group{}, repository.ErrNotFound
	}
	return s.groups[i], nil
}

func (s *Store) GetGroupByID(_ context.Context, id int64) (repository.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.groups, func(g repository.Group) bool { return g.ID == id })
	if i < 0 {
		return repository.Group{}, repository.ErrNotFound
	}
	return s.groups[i], nil
}

func (s *Store) ListGroups(context.Context) ([]repository.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.groups)
	slices.SortFunc(out, func(a, b repository.Group) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) CreatePost(_ context.Context, arg repository.CreatePostParams) (repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := repository.Post{ID: s.id(), Text: arg.Text, CreatedAt: s.now(), AuthorID: arg.AuthorID, GroupID: arg.GroupID}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *Store) UpdatePost(_ context.Context, arg repository.UpdatePostParams) (repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == arg.ID {
			s.posts[i].Text = arg.Text
			s.posts[i].GroupID = arg.GroupID
			return s.posts[i], nil
		}
	}
	return repository.Post{}, repository.ErrNotFound
}

func (s *Store) GetPost(_ context.Context, id int64) (repository.PostRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			return s.row(p), nil
		}
	}
	return repository.PostRow{}, repository.ErrNotFound
}

func (s *Store) CountPosts(context.Context) (int64, error) {
	return s.count(func(repository.Post) bool { return true }), nil
}

func (s *Store) ListPosts(_ context.Context, arg repository.ListPostsParams) ([]repository.PostRow, error) {
	return s.list(func(repository.Post) bool { return true }, arg.Limit, arg.Offset), nil
}

func (s *Store) CountPostsByGroup(_ context.Context, groupID int64) (int64, error) {
	return s.count(inGroup(groupID)), nil
}

func (s *Store) ListPostsByGroup(_ context.Context, arg repository.ListPostsByGroupParams) ([]repository.PostRow, error) {
	return s.list(inGroup(arg.GroupID), arg.Limit, arg.Offset), nil
}

func (s *Store) CountPostsByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	return s.count(byAuthor(authorID)), nil
}

func (s *Store) ListPostsByAuthor(_ context.Context, arg repository.ListPostsByAuthorParams) ([]repository.PostRow, error) {
	return s.list(byAuthor(arg.AuthorID), arg.Limit, arg.Offset), nil
}

// InTx runs fn against s with a nil tx. When fn fails, every write it made
// is rolled back. Calls are not isolated from concurrent writers.
func (s *Store) InTx(_ context.Context, fn func(q repository.Querier, tx pgx.Tx) error) error {
	s.mu.Lock()
	users, groups, posts, nextID := slices.Clone(s.users), slices.Clone(s.groups), slices.Clone(s.posts), s.nextID
	s.mu.Unlock()

	if err := fn(s, nil); err != nil {
		s.mu.Lock()
		s.users, s.groups, s.posts, s.nextID = users, groups, posts, nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

// Posts returns a snapshot of every stored post in insertion order.
func (s *Store) Posts() []repository.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.posts)
}

func inGroup(id int64) func(repository.Post) bool {
	return func(p repository.Post) bool { return p.GroupID != nil && *p.GroupID == id }
}

func byAuthor(id uuid.UUID) func(repository.Post) bool {
	return func(p repository.Post) bool { return p.AuthorID == id }
}

func (s *Store) count(match func(repository.Post) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, p := range s.posts {
		if match(p) {
			n++
		}
	}
	return n
}

func (s *Store) list(match func(repository.Post) bool, limit, offset int32) []repository.PostRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []repository.Post
	for _, p := range s.posts {
		if match(p) {
			matched = append(matched, p)
		}
	}
	slices.SortFunc(matched, func(a, b repository.Post) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})

	start := min(int(offset), len(matched))
	end := min(start+int(limit), len(matched))
	out := make([]repository.PostRow, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, s.row(p))
	}
	return out
}

func (s *Store) row(p repository.Post) repository.PostRow {
	r := repository.PostRow{Post: p}
	if u, err := s.userWhere(func(u repository.User) bool { return u.ID == p.AuthorID }); err == nil {
		r.Author = u
	}
	if p.GroupID != nil {
		for _, g := range s.groups {
			if g.ID == *p.GroupID {
				r.Group = &g
				break
			}
		}
	}
	return r
}
