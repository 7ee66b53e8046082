package documentary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/platform/imdb"
	"cinemacompanion/internal/platform/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	noticeNotConfigured = "IMDb API key not configured; showing sample documentaries."
	noticeUnavailable   = "IMDb is unavailable; showing sample documentaries."
)

// DefaultFetchDeadline bounds one source fetch so a hanging source still
// yields the fallback before the server gives up on the request.
const DefaultFetchDeadline = 8 * time.Second

type Source interface {
	SearchDocumentaries(ctx context.Context, count int) (*imdb.SearchResponse, error)
}

type Service struct {
	source   Source
	catalog  content.Repository
	count    int
	deadline time.Duration
	group    singleflight.Group
}

func NewService(source Source, catalog content.Repository, count int) *Service {
	if count <= 0 {
		count = 20
	}
	return &Service{source: source, catalog: catalog, count: count, deadline: DefaultFetchDeadline}
}

// WithFetchDeadline replaces the bound on a single source fetch.
func (s *Service) WithFetchDeadline(d time.Duration) *Service {
	if d > 0 {
		s.deadline = d
	}
	return s
}

// Load returns the stored documentaries. When none are stored it fetches them
// from the source and stores them; if that fails the fallback list is stored
// and returned as a degraded result. Concurrent loads share one fetch.
func (s *Service) Load(ctx context.Context) (Result, error) {
	stored, err := s.catalog.ListByKind(ctx, content.KindDocumentary)
	if err != nil {
		return Result{}, fmt.Errorf("list documentaries: %w", err)
	}
	if len(stored) > 0 {
		metrics.DocumentaryLoads.WithLabelValues("stored").Inc()
		return Result{Items: stored}, nil
	}

	v, err, _ := s.group.Do("documentaries", func() (any, error) {
		return s.populate(context.WithoutCancel(ctx))
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (s *Service) populate(ctx context.Context) (Result, error) {
	// A concurrent load may have finished between the first check and now.
	stored, err := s.catalog.ListByKind(ctx, content.KindDocumentary)
	if err != nil {
		return Result{}, fmt.Errorf("list documentaries: %w", err)
	}
	if len(stored) > 0 {
		metrics.DocumentaryLoads.WithLabelValues("stored").Inc()
		return Result{Items: stored}, nil
	}

	items, err := s.fetch(ctx)
	if err == nil {
		metrics.DocumentaryLoads.WithLabelValues("fetched").Inc()
		return Result{Items: s.store(ctx, items)}, nil
	}

	log.Warn().Err(err).Msg("documentary source failed, using fallback list")
	notice := noticeUnavailable
	if errors.Is(err, imdb.ErrNotConfigured) {
		notice = noticeNotConfigured
	}
	metrics.DocumentaryLoads.WithLabelValues("fallback").Inc()
	return Result{
		Items:    s.store(ctx, Fallback()),
		Degraded: true,
		Notice:   notice,
	}, nil
}

func (s *Service) fetch(ctx context.Context) ([]content.NewItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	res, err := s.source.SearchDocumentaries(ctx, s.count)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	items := make([]content.NewItem, 0, len(res.Results))
	for _, t := range res.Results {
		items = append(items, FromTitle(t))
	}
	return items, nil
}

// store saves items in order, skipping the ones the catalog rejects.
func (s *Service) store(ctx context.Context, items []content.NewItem) []content.Item {
	out := make([]content.Item, 0, len(items))
	for _, in := range items {
		item, err := s.catalog.Create(ctx, in)
		if err != nil {
			log.Error().Err(err).Str("title", in.Title).Msg("store documentary")
			continue
		}
		out = append(out, item)
	}
	return out
}
