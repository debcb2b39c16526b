package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const postRowSelect = `
SELECT p.id, p.text, p.created_at, p.author_id, p.group_id,
       u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.created_at,
       g.id, g.title, g.slug, g.description
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN groups g ON g.id = p.group_id
`

// Newest first; id breaks ties between posts created in the same instant.
const postOrder = ` ORDER BY p.created_at DESC, p.id DESC`

func scanPostRow(row pgx.Row) (PostRow, error) {
	var (
		r                    PostRow
		groupID              *int64
		title, slug, summary *string
	)
	err := row.Scan(
		&r.ID, &r.Text, &r.CreatedAt, &r.AuthorID, &r.GroupID,
		&r.Author.ID, &r.Author.Username, &r.Author.Email, &r.Author.FirstName, &r.Author.LastName,
		&r.Author.PasswordHash, &r.Author.CreatedAt,
		&groupID, &title, &slug, &summary,
	)
	if err != nil {
		return PostRow{}, err
	}
	if groupID != nil {
		r.Group = &Group{ID: *groupID, Title: deref(title), Slug: deref(slug), Description: deref(summary)}
	}
	return r, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (q *Queries) listPostRows(ctx context.Context, op, sql string, args ...any) ([]PostRow, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	var items []PostRow
	for rows.Next() {
		r, err := scanPostRow(rows)
		if err != nil {
			return nil, mapErr(op, err)
		}
		items = append(items, r)
	}
	return items, mapErr(op, rows.Err())
}

func (q *Queries) count(ctx context.Context, op, sql string, args ...any) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, sql, args...).Scan(&n)
	return n, mapErr(op, err)
}

type ListPostsParams struct {
	Limit  int32
	Offset int32
}

const countPosts = `SELECT count(*) FROM posts`

func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	return q.count(ctx, "count posts", countPosts)
}

const listPosts = postRowSelect + postOrder + ` LIMIT $1 OFFSET $2`

func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]PostRow, error) {
	return q.listPostRows(ctx, "list posts", listPosts, arg.Limit, arg.Offset)
}

type ListPostsByGroupParams struct {
	GroupID int64
	Limit   int32
	Offset  int32
}

const countPostsByGroup = `SELECT count(*) FROM posts WHERE group_id = $1`

func (q *Queries) CountPostsByGroup(ctx context.Context, groupID int64) (int64, error) {
	return q.count(ctx, "count posts by group", countPostsByGroup, groupID)
}

const listPostsByGroup = postRowSelect + ` WHERE p.group_id = $1` + postOrder + ` LIMIT $2 OFFSET $3`

func (q *Queries) ListPostsByGroup(ctx context.Context, arg ListPostsByGroupParams) ([]PostRow, error) {
	return q.listPostRows(ctx, "list posts by group", listPostsByGroup, arg.GroupID, arg.Limit, arg.Offset)
}

type ListPostsByAuthorParams struct {
	AuthorID uuid.UUID
	Limit    int32
	Offset   int32
}

const countPostsByAuthor = `SELECT count(*) FROM posts WHERE author_id = $1`

func (q *Queries) CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return q.count(ctx, "count posts by author", countPostsByAuthor, authorID)
}

const listPostsByAuthor = postRowSelect + ` WHERE p.author_id = $1` + postOrder + ` LIMIT $2 OFFSET $3`

func (q *Queries) ListPostsByAuthor(ctx context.Context, arg ListPostsByAuthorParams) ([]PostRow, error) {
	return q.listPostRows(ctx, "list posts by author", listPostsByAuthor, arg.AuthorID, arg.Limit, arg.Offset)
}

const getPost = postRowSelect + ` WHERE p.id = $1`

func (q *Queries) GetPost(ctx context.Context, id int64) (PostRow, error) {
	r, err := scanPostRow(q.db.QueryRow(ctx, getPost, id))
	return r, mapErr("get post", err)
}

const createPost = `
INSERT INTO posts (text, author_id, group_id)
VALUES ($1, $2, $3)
RETURNING id, text, created_at, author_id, group_id`

type CreatePostParams struct {
	Text     string
	AuthorID uuid.UUID
	GroupID  *int64
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	var p Post
	err := q.db.QueryRow(ctx, createPost, arg.Text, arg.AuthorID, arg.GroupID).
		Scan(&p.ID, &p.Text, &p.CreatedAt, &p.AuthorID, &p.GroupID)
	return p, mapErr("create post", err)
}

// Author and creation time are fixed at creation; only text and group change.
const updatePost = `
UPDATE posts SET text = $2, group_id = $3
WHERE id = $1
RETURNING id, text, created_at, author_id, group_id`

type UpdatePostParams struct {
	ID      int64
	Text    string
	GroupID *int64
}

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	var p Post
	err := q.db.QueryRow(ctx, updatePost, arg.ID, arg.Text, arg.GroupID).
		Scan(&p.ID, &p.Text, &p.CreatedAt, &p.AuthorID, &p.GroupID)
	return p, mapErr("update post", err)
}
