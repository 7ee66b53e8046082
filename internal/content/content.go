package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a catalog item does not exist.
	ErrNotFound = errors.New("content not found")
	// ErrInvalid is returned when a catalog item is missing required fields.
	ErrInvalid = errors.New("invalid content")
)

// Kind is the catalog category of an item.
type Kind string

const (
	KindDocumentary Kind = "documentary"
	KindMusic       Kind = "music"
)

// ParseKind maps a query value to a Kind. Empty and "all" mean no kind filter.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindDocumentary:
		return KindDocumentary, true
	case KindMusic:
		return KindMusic, true
	default:
		return "", false
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindDocumentary || k == KindMusic
}

// Item is a documentary or music record in the catalog.
// Rating is scaled by 10, so 85 means 8.5.
type Item struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Kind        Kind    `json:"type"`
	Genre       string  `json:"genre"`
	Year        int     `json:"year"`
	Rating      int     `json:"rating"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Director    *string `json:"director,omitempty"`
	Artist      *string `json:"artist,omitempty"`
	IMDbID      *string `json:"imdbId,omitempty"`
}

// NewItem carries everything needed to create an Item; the store assigns the ID.
type NewItem struct {
	Title       string
	Kind        Kind
	Genre       string
	Year        int
	Rating      int
	Duration    string
	Description string
	Image       string
	Director    *string
	Artist      *string
	IMDbID      *string
}

// Validate checks required field presence and value domains.
func (n NewItem) Validate() error {
	switch {
	case strings.TrimSpace(n.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	case !n.Kind.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, n.Kind)
	case strings.TrimSpace(n.Genre) == "":
		return fmt.Errorf("%w: genre is required", ErrInvalid)
	case n.Rating < 0 || n.Rating > 100:
		return fmt.Errorf("%w: rating %d out of range", ErrInvalid, n.Rating)
	}
	return nil
}

// Build materializes the item with the given id.
func (n NewItem) Build(id int64) Item {
	return Item{
		ID:          id,
		Title:       n.Title,
		Kind:        n.Kind,
		Genre:       n.Genre,
		Year:        n.Year,
		Rating:      n.Rating,
		Duration:    n.Duration,
		Description: n.Description,
		Image:       n.Image,
		Director:    n.Director,
		Artist:      n.Artist,
		IMDbID:      n.IMDbID,
	}
}

// Matches reports whether the lowercased query is a substring of the title,
// description or genre, ignoring case.
func (i Item) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(i.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(i.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(i.Genre), lowerQuery)
}

// StrPtr is a helper for the optional string fields.
func StrPtr(s string) *string {
	return &s
}
