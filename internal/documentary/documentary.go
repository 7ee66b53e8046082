// Package documentary loads the documentary catalog from the metadata source,
// falling back to a static list when the source cannot be used.
package documentary

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/platform/imdb"
)

// ErrSourceUnavailable wraps every failure to obtain documentaries from the
// metadata source.
var ErrSourceUnavailable = errors.New("documentary source unavailable")

const (
	defaultGenre       = "Documentary"
	defaultYear        = 2020
	defaultRating      = 70
	defaultRuntimeMins = 90
	defaultDirector    = "Unknown Director"
	defaultDescription = "An engaging documentary exploring important themes and stories."
	defaultImage       = "https://images.unsplash.com/photo-1489599363582-b8c104a3e1be?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"
)

// Result is the documentary list served to clients. Degraded is set when the
// items come from the fallback list; Notice then says why.
type Result struct {
	Items    []content.Item
	Degraded bool
	Notice   string
}

// FromTitle converts a search result into a catalog item, filling defaults
// for missing or unparsable fields.
func FromTitle(t imdb.Title) content.NewItem {
	item := content.NewItem{
		Title:       strings.TrimSpace(t.Title),
		Kind:        content.KindDocumentary,
		Genre:       firstGenre(t.Genres),
		Year:        leadingInt(string(t.Year), defaultYear),
		Rating:      scaledRating(string(t.IMDbRating)),
		Duration:    strconv.Itoa(leadingInt(string(t.RuntimeMins), defaultRuntimeMins)) + " min",
		Description: orDefault(t.Plot, defaultDescription),
		Image:       orDefault(t.Image, defaultImage),
		Director:    content.StrPtr(orDefault(t.Directors, defaultDirector)),
	}
	if id := strings.TrimSpace(t.ID); id != "" {
		item.IMDbID = content.StrPtr(id)
	}
	return item
}

func firstGenre(genres string) string {
	first, _, _ := strings.Cut(genres, ",")
	return orDefault(first, defaultGenre)
}

// leadingInt parses the digits at the start of s, after spaces and an
// opening parenthesis, so "2018", "(2018)" and "2018–2020" all give 2018.
// Zero and unparsable values yield def.
func leadingInt(s string, def int) int {
	s = strings.TrimLeft(strings.TrimSpace(s), "(")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func scaledRating(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return defaultRating
	}
	r := int(math.Round(f * 10))
	switch {
	case r <= 0:
		return defaultRating
	case r > 100:
		return 100
	}
	return r
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// Fallback is served when the metadata source is unavailable.
func Fallback() []content.NewItem {
	return []content.NewItem{
		{
			Title:       "Free Solo",
			Kind:        content.KindDocumentary,
			Genre:       "Sports",
			Year:        2018,
			Rating:      82,
			Duration:    "100 min",
			Description: "Follow rock climber Alex Honnold as he prepares to achieve his lifelong dream: climbing the face of the world's most famous rock formation, El Capitan in Yosemite National Park, without a rope.",
			Image:       "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Director:    content.StrPtr("Jimmy Chin, Elizabeth Chai Vasarhelyi"),
		},
		{
			Title:       "Won't You Be My Neighbor?",
			Kind:        content.KindDocumentary,
			Genre:       "Biography",
			Year:        2018,
			Rating:      84,
			Duration:    "94 min",
			Description: "An exploration of the life, lessons, and legacy of iconic children's television host Fred Rogers.",
			Image:       "https://images.unsplash.com/photo-1607706189992-eae578626c86?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Director:    content.StrPtr("Morgan Neville"),
		},
	}
}
