package user

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=user

// Repository defines the contract for account storage.
type Repository interface {
	// CreateUser fails with ErrEmailTaken or ErrUsernameTaken without inserting.
	CreateUser(ctx context.Context, in NewUser) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	// SetFavorites replaces the favorites of an existing user as one step.
	SetFavorites(ctx context.Context, userID int64, ids []int64) (User, error)
}
