package content

import (
	"context"
	"fmt"
	"strings"
)

// Service provides catalog browsing on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new content service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new item.
func (s *Service) Create(ctx context.Context, in NewItem) (Item, error) {
	if err := in.Validate(); err != nil {
		return Item{}, err
	}
	return s.repo.Create(ctx, in)
}

// Get returns a single item by id.
func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	return s.repo.GetByID(ctx, id)
}

// All returns the full catalog in store order.
func (s *Service) All(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Browse picks the narrowest repository scan (search, then kind, then all)
// and applies the remaining filters and sort order in memory.
func (s *Service) Browse(ctx context.Context, q Query) ([]Item, error) {
	var (
		items []Item
		err   error
	)
	switch search := strings.TrimSpace(q.Search); {
	case search != "":
		items, err = s.repo.Search(ctx, search)
	case q.Kind != "":
		items, err = s.repo.ListByKind(ctx, q.Kind)
	default:
		items, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("browse content: %w", err)
	}

	items = Filter(items, q)
	SortItems(items, q.Sort)
	return items, nil
}

// Resolve returns the catalog items for ids, in store order. Ids that do not
// reference an item are skipped.
func (s *Service) Resolve(ctx context.Context, ids []int64) ([]Item, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Pick(all, ids), nil
}

// Pick returns the members of all whose id is in ids, preserving the order of all.
func Pick(all []Item, ids []int64) []Item {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]Item, 0, len(ids))
	for _, item := range all {
		if _, ok := want[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}
