package domain

import "time"

// CatalogItem represents a product record in the storefront catalog.
// Search only reads Name, Brand, Description, Category, Rating and InStock;
// the remaining fields exist for the storefront and back-office surfaces.
type CatalogItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Rating      float64   `json:"rating"` // 0-5
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// MatchType classifies how strongly the query matched the item name.
// It reflects the name field only; brand or description-only matches
// still classify as MatchFuzzy.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchStartsWith MatchType = "starts-with"
	MatchContains   MatchType = "contains"
	MatchFuzzy      MatchType = "fuzzy"
)

// MatchResult is the scored outcome of comparing one catalog item to one
// query. Results are built fresh on every search and never cached by the
// ranking code itself.
type MatchResult struct {
	Item          *CatalogItem `json:"item"`
	Score         float64      `json:"score"`
	MatchType     MatchType    `json:"matchType"`
	MatchedFields []string     `json:"matchedFields,omitempty"` // first-seen order
}
