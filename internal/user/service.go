package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/platform/crypto"
)

type Service struct {
	repo    Repository
	catalog content.Repository
}

func NewService(repo Repository, catalog content.Repository) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Register hashes the password and creates the account.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.CreateUser(ctx, NewUser{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
}

// Authenticate returns the user owning email when password matches its hash.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// SetFavorites replaces the user's favorites. Repeated ids are collapsed.
func (s *Service) SetFavorites(ctx context.Context, userID int64, ids []int64) (User, error) {
	return s.repo.SetFavorites(ctx, userID, NormalizeFavorites(ids))
}

// Favorites returns the catalog items the user favorited, in catalog order.
// Favorites that reference missing items are skipped.
func (s *Service) Favorites(ctx context.Context, userID int64) ([]content.Item, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return content.Pick(all, u.Favorites), nil
}
