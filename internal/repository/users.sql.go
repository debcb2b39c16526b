package repository

import (
	"context"

	"github.com/google/uuid"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const createUser = `
INSERT INTO users (id, username, email, first_name, last_name, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

type CreateUserParams struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

// CreateUser returns ErrDuplicate when the username is taken.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		uuid.New(), arg.Username, arg.Email, arg.FirstName, arg.LastName, arg.PasswordHash)
	u, err := scanUser(row)
	return u, mapErr("create user", err)
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	u, err := scanUser(q.db.QueryRow(ctx, getUserByUsername, username))
	return u, mapErr("get user by username", err)
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, err := scanUser(q.db.QueryRow(ctx, getUserByID, id))
	return u, mapErr("get user by id", err)
}
