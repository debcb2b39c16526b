package repository

import (
	"context"
)

const groupColumns = `id, title, slug, description`

const getGroupBySlug = `SELECT ` + groupColumns + ` FROM groups WHERE slug = $1`

func (q *Queries) GetGroupBySlug(ctx context.Context, slug string) (Group, error) {
	var g Group
	err := q.db.QueryRow(ctx, getGroupBySlug, slug).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	return g, mapErr("get group by slug", err)
}

const getGroupByID = `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

func (q *Queries) GetGroupByID(ctx context.Context, id int64) (Group, error) {
	var g Group
	err := q.db.QueryRow(ctx, getGroupByID, id).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	return g, mapErr("get group by id", err)
}

const listGroups = `SELECT ` + groupColumns + ` FROM groups ORDER BY title, id`

func (q *Queries) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := q.db.Query(ctx, listGroups)
	if err != nil {
		return nil, mapErr("list groups", err)
	}
	defer rows.Close()

	var items []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, mapErr("list groups", err)
		}
		items = append(items, g)
	}
	return items, mapErr("list groups", rows.Err())
}

const createGroup = `
INSERT INTO groups (title, slug, description)
VALUES ($1, $2, $3)
RETURNING ` + groupColumns

type CreateGroupParams struct {
	Title       string
	Slug        string
	Description string
}

// CreateGroup returns ErrDuplicate when the slug is taken.
func (q *Queries) CreateGroup(ctx context.Context, arg CreateGroupParams) (Group, error) {
	var g Group
	err := q.db.QueryRow(ctx, createGroup, arg.Title, arg.Slug, arg.Description).
		Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	return g, mapErr("create group", err)
}
