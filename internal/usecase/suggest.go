package usecase

import (
	"strings"
	"unicode"

	"github.com/storelens/backend/internal/domain"
)

// Suggestions derives short autocomplete strings from the catalog for a
// query: item names, brands and categories containing the query, plus
// name words that extend the query as a prefix (capitalized).
//
// Items are scanned in input order and scanning stops as soon as the
// unique-suggestion count reaches limit, so later items are never
// inspected once the limit is reached. That makes output depend on catalog
// order, which is the contract: callers get deterministic suggestions for
// a deterministic catalog without paying for a full scan.
func Suggestions(query string, items []domain.CatalogItem, limit int) []string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" || limit <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for i := range items {
		if len(out) >= limit {
			break
		}
		item := &items[i]

		lowerName := strings.ToLower(item.Name)
		if item.Name != "" && strings.Contains(lowerName, normalized) {
			add(item.Name)
		}
		if item.Brand != "" && strings.Contains(strings.ToLower(item.Brand), normalized) {
			add(item.Brand)
		}
		if item.Category != "" && strings.Contains(strings.ToLower(item.Category), normalized) {
			add(item.Category)
		}

		// Word completions: name words that start with the query but
		// extend past it, e.g. "pho" -> "Phone".
		for _, word := range strings.Fields(lowerName) {
			if strings.HasPrefix(word, normalized) && len(word) > len(normalized) {
				add(capitalize(word))
			}
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// capitalize upper-cases the first rune, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
