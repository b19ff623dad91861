package usecase

import (
	"sort"
	"strings"

	"github.com/storelens/backend/internal/domain"
)

// DefaultResultLimit is used when a caller passes a non-positive limit.
const DefaultResultLimit = 10

// Rank scores every catalog item against the query, drops non-matches,
// and returns the best results ordered by descending score. Ties are
// broken by ascending item name; the sort is stable so identical
// (score, name) pairs keep their input order.
//
// An empty or whitespace-only query returns no results and no error.
// Rank never mutates items; results reference them without copying.
func Rank(query string, items []domain.CatalogItem, limit int) []domain.MatchResult {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	queryWords := strings.Fields(normalized)

	results := make([]domain.MatchResult, 0, len(items))
	for i := range items {
		item := &items[i]
		score, matchType, matchedFields := scoreItem(item, normalized, queryWords)
		if score <= 0 {
			continue
		}
		results = append(results, domain.MatchResult{
			Item:          item,
			Score:         score,
			MatchType:     matchType,
			MatchedFields: matchedFields,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Name < results[j].Item.Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
