package content

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders for Browse.
const (
	SortTitle  = "title"
	SortYear   = "year"
	SortRating = "rating"
)

// Query defines the browse filters. Zero values disable a filter.
type Query struct {
	Search    string
	Kind      Kind
	Genre     string
	Year      int
	MinRating int
	Sort      string
}

// Keep reports whether item passes every non-search filter of q.
func (q Query) Keep(item Item) bool {
	if q.Kind != "" && item.Kind != q.Kind {
		return false
	}
	if q.Genre != "" && item.Genre != q.Genre {
		return false
	}
	if q.Year != 0 && item.Year != q.Year {
		return false
	}
	if q.MinRating > 0 && item.Rating < q.MinRating {
		return false
	}
	return true
}

// Filter returns the items that pass q, preserving order.
func Filter(items []Item, q Query) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if q.Keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortItems orders items in place: title ascending (locale aware, case
// insensitive), year descending or rating descending. Unknown orders keep
// the input order.
func SortItems(items []Item, order string) {
	switch strings.ToLower(order) {
	case SortTitle:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Title, items[j].Title) < 0
		})
	case SortYear:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Year > items[j].Year
		})
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	}
}
