package store

import (
	"context"
	"fmt"

	"cinemacompanion/internal/content"
)

// Creator is the write side of content.Repository.
type Creator interface {
	Create(ctx context.Context, in content.NewItem) (content.Item, error)
}

// DemoCatalog is the music catalog loaded for demos and local development.
func DemoCatalog() []content.NewItem {
	return []content.NewItem{
		{
			Title:       "Beethoven's Symphony Collection",
			Kind:        content.KindMusic,
			Genre:       "Classical",
			Year:        2021,
			Rating:      92,
			Duration:    "180 min",
			Description: "Complete collection of Beethoven's symphonies performed by the Vienna Philharmonic Orchestra.",
			Image:       "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Artist:      content.StrPtr("Ludwig van Beethoven"),
		},
		{
			Title:       "Jazz at Lincoln Center",
			Kind:        content.KindMusic,
			Genre:       "Jazz",
			Year:        2022,
			Rating:      87,
			Duration:    "120 min",
			Description: "Live jazz performances featuring contemporary artists and classic compositions.",
			Image:       "https://images.unsplash.com/photo-1511192336575-5a79af67a629?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Artist:      content.StrPtr("Various Artists"),
		},
		{
			Title:       "Miles Davis: Kind of Blue Sessions",
			Kind:        content.KindMusic,
			Genre:       "Jazz",
			Year:        2020,
			Rating:      95,
			Duration:    "75 min",
			Description: "Rare recordings and outtakes from the legendary Kind of Blue sessions.",
			Image:       "https://images.unsplash.com/photo-1516280440614-37939bbacd81?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Artist:      content.StrPtr("Miles Davis"),
		},
		{
			Title:       "World Music Anthology",
			Kind:        content.KindMusic,
			Genre:       "World",
			Year:        2023,
			Rating:      83,
			Duration:    "240 min",
			Description: "A journey through traditional and contemporary music from around the globe.",
			Image:       "https://images.unsplash.com/photo-1471478331149-c72f17e33c73?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Artist:      content.StrPtr("Various Artists"),
		},
	}
}

// SeedDemo inserts DemoCatalog into repo in order.
func SeedDemo(ctx context.Context, repo Creator) error {
	for _, in := range DemoCatalog() {
		if _, err := repo.Create(ctx, in); err != nil {
			return fmt.Errorf("seed %q: %w", in.Title, err)
		}
	}
	return nil
}
