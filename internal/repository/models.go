package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

// FullName is "First Last", or the username when both are empty.
func (u User) FullName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

type Group struct {
	ID          int64
	Title       string
	Slug        string
	Description string
}

type Post struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	AuthorID  uuid.UUID
	GroupID   *int64
}

// PostRow is a post joined with its author and optional group, the shape
// every listing renders.
type PostRow struct {
	Post
	Author User
	Group  *Group
}
