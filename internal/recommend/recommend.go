// Package recommend ranks catalog items for a user from their favorites.
//
// Two variants are served. Recommend scores candidates by genre affinity,
// rating and recency. RecommendByRating is the simpler variant that keeps
// candidates sharing a favorited genre or rated highly, ordered by rating.
// Both are pure and deterministic for a given input.
package recommend

import (
	"sort"

	"cinemacompanion/internal/content"
)

// MaxResults caps the length of every recommendation list.
const MaxResults = 8

const (
	genreStep    = 10
	highRating   = 80
	highBonus    = 15
	goodRating   = 70
	goodBonus    = 10
	recentYears  = 2
	recencyBonus = 5
)

// Scored is a candidate with its recommendation score.
type Scored struct {
	content.Item
	Score int `json:"score"`
}

// GenreRanking orders the genres of favorites by descending frequency. Ties
// keep the order in which genres first appear.
func GenreRanking(favorites []content.Item) []string {
	counts := make(map[string]int)
	var order []string
	for _, fav := range favorites {
		if _, seen := counts[fav.Genre]; !seen {
			order = append(order, fav.Genre)
		}
		counts[fav.Genre]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

// Recommend scores every item of all that is not a favorite and returns the
// top MaxResults with a positive score, highest first. Equal scores keep the
// order of all. The result is empty, never nil, when favorites is empty.
func Recommend(all, favorites []content.Item, currentYear int) []Scored {
	if len(favorites) == 0 {
		return []Scored{}
	}

	ranking := GenreRanking(favorites)
	genreBonus := make(map[string]int, len(ranking))
	for i, genre := range ranking {
		genreBonus[genre] = (len(ranking) - i) * genreStep
	}

	favorited := make(map[int64]struct{}, len(favorites))
	for _, fav := range favorites {
		favorited[fav.ID] = struct{}{}
	}

	out := make([]Scored, 0, len(all))
	for _, item := range all {
		if _, ok := favorited[item.ID]; ok {
			continue
		}
		score := genreBonus[item.Genre] + ratingBonus(item.Rating)
		if item.Year >= currentYear-recentYears {
			score += recencyBonus
		}
		if score <= 0 {
			continue
		}
		out = append(out, Scored{Item: item, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

func ratingBonus(rating int) int {
	switch {
	case rating >= highRating:
		return highBonus
	case rating >= goodRating:
		return goodBonus
	default:
		return 0
	}
}

// RecommendByRating resolves favoriteIDs against all and returns up to
// MaxResults unfavorited items that share a favorited genre or have a rating
// of at least 80, ordered by rating descending. Ids missing from all are
// ignored; with no resolvable favorites the result is empty.
func RecommendByRating(all []content.Item, favoriteIDs []int64) []content.Item {
	favorites := content.Pick(all, favoriteIDs)
	if len(favorites) == 0 {
		return []content.Item{}
	}

	genres := make(map[string]struct{}, len(favorites))
	favorited := make(map[int64]struct{}, len(favorites))
	for _, fav := range favorites {
		genres[fav.Genre] = struct{}{}
		favorited[fav.ID] = struct{}{}
	}

	out := make([]content.Item, 0, len(all))
	for _, item := range all {
		if _, ok := favorited[item.ID]; ok {
			continue
		}
		if _, ok := genres[item.Genre]; ok || item.Rating >= highRating {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}
