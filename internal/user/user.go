package user

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrEmailTaken         = fmt.Errorf("email: %w", ErrAlreadyExists)
	ErrUsernameTaken      = fmt.Errorf("username: %w", ErrAlreadyExists)
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a registered account. Favorites holds catalog item ids with set
// semantics; ids are not checked against the catalog.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Favorites    []int64   `json:"favorites"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser carries the fields required to create a User.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// Clone returns a copy of u that shares no memory with it.
func (u User) Clone() User {
	u.Favorites = append(make([]int64, 0, len(u.Favorites)), u.Favorites...)
	return u
}

// NormalizeFavorites drops repeated ids, keeping first occurrences. The result
// is never nil.
func NormalizeFavorites(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
