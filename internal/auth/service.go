package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cinemacompanion/internal/platform/crypto"
	"cinemacompanion/internal/user"
)

var ErrUnauthorized = errors.New("unauthorized")

// Session is the result of a successful login.
type Session struct {
	User        user.User `json:"user"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
}

type Service struct {
	users     Authenticator
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(users Authenticator, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}

	token, err := crypto.GenerateToken(s.jwtSecret, strconv.FormatInt(u.ID, 10), s.tokenTTL)
	if err != nil {
		return Session{}, fmt.Errorf("generate access token: %w", err)
	}

	return Session{
		User:        u,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
