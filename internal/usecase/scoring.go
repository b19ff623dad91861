package usecase

import (
	"math"
	"strings"

	"github.com/storelens/backend/internal/domain"
)

// Scoring weights. These are contractual: the ordering of search results is
// part of the API surface and the tests pin every one of them.
const (
	nameExactScore      = 1000.0 // name equals the query
	nameStartsWithScore = 500.0  // name starts with the query
	nameContainsScore   = 300.0  // query appears inside the name
	nameFuzzyScore      = 100.0  // subsequence match on the name

	wordNameScore        = 50.0 // per query word found in the name
	wordBrandScore       = 30.0 // per query word found in the brand
	wordDescriptionScore = 20.0 // per query word found in the description
	wordCategoryScore    = 15.0 // per query word found in the category

	allWordsBonus = 50.0 // every word of a multi-word query matched somewhere

	brandExactBonus    = 200.0 // brand equals the query
	brandContainsBonus = 100.0 // query appears inside the brand
	descriptionBonus   = 50.0  // query appears inside the description
	categoryBonus      = 30.0  // query appears inside the category

	inStockBonus     = 10.0 // available items rank above out-of-stock ones
	ratingMultiplier = 2.0  // rating (0-5) contributes up to 10 points

	fuzzyCoverage = 0.7 // fraction of query runes a subsequence match must cover
)

// scoreItem computes the relevance of one catalog item against a query.
// normalizedQuery must be trimmed and lower-cased, and queryWords must be
// its whitespace-split tokens; both are computed once per Rank call.
//
// Returns the accumulated score, the match classification of the name field,
// and the contributing fields in first-seen order. A zero score means the
// item did not match at all.
func scoreItem(item *domain.CatalogItem, normalizedQuery string, queryWords []string) (float64, domain.MatchType, []string) {
	name := strings.ToLower(item.Name)
	brand := strings.ToLower(item.Brand)
	description := strings.ToLower(item.Description)
	category := strings.ToLower(item.Category)

	score := 0.0
	matchType := domain.MatchFuzzy
	fields := fieldSet{}

	// Name tiers are mutually exclusive: the strongest one wins.
	switch {
	case name == normalizedQuery:
		score += nameExactScore
		matchType = domain.MatchExact
		fields.add("name")
	case strings.HasPrefix(name, normalizedQuery):
		score += nameStartsWithScore
		matchType = domain.MatchStartsWith
		fields.add("name")
	case strings.Contains(name, normalizedQuery):
		score += nameContainsScore
		matchType = domain.MatchContains
		fields.add("name")
	case fuzzySubsequenceMatch(name, normalizedQuery):
		score += nameFuzzyScore
		fields.add("name")
	}

	// Per-word credit: each word scores against the first field that
	// contains it, in fixed priority order. A word present in several
	// fields only credits the highest-priority one; that under-counting
	// is deliberate and keeps ranking stable.
	matchedWords := 0
	for _, word := range queryWords {
		switch {
		case strings.Contains(name, word):
			score += wordNameScore
			fields.add("name")
			matchedWords++
		case brand != "" && strings.Contains(brand, word):
			score += wordBrandScore
			fields.add("brand")
			matchedWords++
		case description != "" && strings.Contains(description, word):
			score += wordDescriptionScore
			fields.add("description")
			matchedWords++
		case category != "" && strings.Contains(category, word):
			score += wordCategoryScore
			fields.add("category")
			matchedWords++
		}
	}

	if len(queryWords) > 1 && matchedWords == len(queryWords) {
		score += allWordsBonus
	}

	// Whole-query field bonuses, independent of the per-word scan.
	if brand != "" {
		if brand == normalizedQuery {
			score += brandExactBonus
			fields.add("brand")
		} else if strings.Contains(brand, normalizedQuery) {
			score += brandContainsBonus
			fields.add("brand")
		}
	}
	if description != "" && strings.Contains(description, normalizedQuery) {
		score += descriptionBonus
		fields.add("description")
	}
	if category != "" && strings.Contains(category, normalizedQuery) {
		score += categoryBonus
		fields.add("category")
	}

	// Availability and rating only separate items that already matched;
	// they must not pull a textually unrelated item into the results.
	if score > 0 {
		if item.InStock {
			score += inStockBonus
		}
		score += item.Rating * ratingMultiplier
	}

	return score, matchType, fields.names
}

// fuzzySubsequenceMatch reports whether the query's characters appear in
// order (not necessarily contiguously) within the candidate, covering at
// least 70% of the query. Single forward scan, not edit distance, so it
// stays linear in the candidate length.
func fuzzySubsequenceMatch(candidate, query string) bool {
	queryRunes := []rune(query)
	if len(queryRunes) < 2 {
		return false
	}

	required := int(math.Ceil(fuzzyCoverage * float64(len(queryRunes))))
	matched := 0
	for _, r := range candidate {
		if matched >= len(queryRunes) {
			break
		}
		if r == queryRunes[matched] {
			matched++
			if matched >= required {
				return true
			}
		}
	}
	return matched >= required
}

// fieldSet is a tiny ordered set of field names. Insertion order is kept
// so matchedFields comes out deterministic for identical inputs.
type fieldSet struct {
	names []string
}

func (f *fieldSet) add(name string) {
	for _, existing := range f.names {
		if existing == name {
			return
		}
	}
	f.names = append(f.names, name)
}
