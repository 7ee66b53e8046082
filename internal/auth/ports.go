package auth

//go:generate mockgen -source=ports.go -destination=mock_authenticator.go -package=auth

import (
	"context"

	"cinemacompanion/internal/user"
)

// Authenticator verifies credentials against stored accounts.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (user.User, error)
}
