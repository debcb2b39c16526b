package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yatube-go/yatube/pkg/db"
)

// Querier lists every query, so code running inside InTx can be handed
// either Queries or a test double.
type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)

	GetGroupBySlug(ctx context.Context, slug string) (Group, error)
	GetGroupByID(ctx context.Context, id int64) (Group, error)
	ListGroups(ctx context.Context) ([]Group, error)
	CreateGroup(ctx context.Context, arg CreateGroupParams) (Group, error)

	CountPosts(ctx context.Context) (int64, error)
	ListPosts(ctx context.Context, arg ListPostsParams) ([]PostRow, error)
	CountPostsByGroup(ctx context.Context, groupID int64) (int64, error)
	ListPostsByGroup(ctx context.Context, arg ListPostsByGroupParams) ([]PostRow, error)
	CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	ListPostsByAuthor(ctx context.Context, arg ListPostsByAuthorParams) ([]PostRow, error)
	GetPost(ctx context.Context, id int64) (PostRow, error)
	CreatePost(ctx context.Context, arg CreatePostParams) (Post, error)
	UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error)
}

var _ Querier = (*Queries)(nil)

// Store is Queries over a pool that can also open transactions.
type Store struct {
	*Queries
	pool db.TxBeginner
}

func NewStore(pool interface {
	DBTX
	db.TxBeginner
}) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// InTx runs fn in one transaction. q is bound to tx; tx itself is passed
// along for writes outside this package, such as job inserts.
func (s *Store) InTx(ctx context.Context, fn func(q Querier, tx pgx.Tx) error) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(s.WithTx(tx), tx)
	})
}
