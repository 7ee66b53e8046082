package content

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=content

// Repository defines the contract for catalog storage. List, ListByKind and
// Search return items in insertion order.
type Repository interface {
	Create(ctx context.Context, in NewItem) (Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	List(ctx context.Context) ([]Item, error)
	ListByKind(ctx context.Context, kind Kind) ([]Item, error)
	Search(ctx context.Context, query string) ([]Item, error)
}
