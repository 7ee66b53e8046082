package recommend

import (
	"context"
	"fmt"
	"time"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/platform/metrics"
	"cinemacompanion/internal/user"

	"github.com/rs/zerolog/log"
)

const (
	variantRating = "rating"
	variantScored = "scored"
)

// Service serves recommendations for stored users.
type Service struct {
	users   user.Repository
	catalog content.Repository
	now     func() time.Time
}

func NewService(users user.Repository, catalog content.Repository) *Service {
	return &Service{users: users, catalog: catalog, now: time.Now}
}

// WithClock replaces the clock used for the recency bonus.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ForUser returns the rating-ordered recommendations for userID.
// user.ErrNotFound is returned for unknown users.
func (s *Service) ForUser(ctx context.Context, userID int64) ([]content.Item, error) {
	u, all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := RecommendByRating(all, u.Favorites)
	observe(variantRating, userID, len(items))
	return items, nil
}

// ScoredForUser returns the scored recommendations for userID.
// user.ErrNotFound is returned for unknown users.
func (s *Service) ScoredForUser(ctx context.Context, userID int64) ([]Scored, error) {
	u, all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	scored := Recommend(all, content.Pick(all, u.Favorites), s.now().Year())
	observe(variantScored, userID, len(scored))
	return scored, nil
}

func (s *Service) load(ctx context.Context, userID int64) (user.User, []content.Item, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return user.User{}, nil, err
	}
	all, err := s.catalog.List(ctx)
	if err != nil {
		return user.User{}, nil, fmt.Errorf("list catalog: %w", err)
	}
	return u, all, nil
}

func observe(variant string, userID int64, n int) {
	metrics.RecommendationsServed.WithLabelValues(variant).Inc()
	metrics.RecommendationResultSize.WithLabelValues(variant).Observe(float64(n))
	log.Debug().
		Str("variant", variant).
		Int64("user_id", userID).
		Int("results", n).
		Msg("recommendations served")
}
