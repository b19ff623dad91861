package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/storelens/backend/internal/domain"
	"github.com/storelens/backend/internal/logging"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	DefaultLimit int
	MaxLimit     int
	SuggestLimit int
	CacheTTL     time.Duration
}

// SearchService serves catalog search and autocomplete suggestions.
// The ranking functions themselves are pure; this layer owns loading the
// catalog and caching rendered responses for repeated keystrokes.
type SearchService struct {
	catalog      domain.CatalogRepository
	cache        domain.CacheRepository
	rec          *logging.Recorder
	defaultLimit int
	maxLimit     int
	suggestLimit int
	cacheTTL     time.Duration
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	catalog domain.CatalogRepository,
	cache domain.CacheRepository,
	rec *logging.Recorder,
	config SearchServiceConfig,
) *SearchService {
	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = DefaultResultLimit
	}
	maxLimit := config.MaxLimit
	if maxLimit < defaultLimit {
		maxLimit = 50
	}
	suggestLimit := config.SuggestLimit
	if suggestLimit <= 0 {
		suggestLimit = 8
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Second
	}

	return &SearchService{
		catalog:      catalog,
		cache:        cache,
		rec:          rec,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		suggestLimit: suggestLimit,
		cacheTTL:     cacheTTL,
	}
}

// Search ranks the catalog against the query.
// Flow: clamp limit -> check cache -> load catalog -> rank -> cache -> return
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.MatchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.MatchResult{}, nil
	}
	limit = s.clampLimit(limit)

	cacheKey := searchCacheKey("search", query, limit)

	var cached []domain.MatchResult
	if s.getFromCache(ctx, cacheKey, &cached) {
		s.rec.Debugf("search cache hit: %q", query)
		return cached, nil
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	results := Rank(query, items, limit)
	if results == nil {
		results = []domain.MatchResult{}
	}
	s.rec.Debugf("search %q: %d of %d items matched", query, len(results), len(items))

	s.setInCache(ctx, cacheKey, results)
	return results, nil
}

// Suggest returns autocomplete suggestions for the query.
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = s.suggestLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	cacheKey := searchCacheKey("suggest", query, limit)

	var cached []string
	if s.getFromCache(ctx, cacheKey, &cached) {
		s.rec.Debugf("suggest cache hit: %q", query)
		return cached, nil
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	suggestions := Suggestions(query, items, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	s.setInCache(ctx, cacheKey, suggestions)
	return suggestions, nil
}

func (s *SearchService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// searchCacheKey creates a cache key for a query and limit.
// Format: "{kind}:{normalized_query}:{limit}"
//
// The query portion is normalized exactly the way the ranking functions
// normalize it, nothing more. Punctuation changes the ranking ("usb-c"
// and "usbc" score differently against the same name), so stripping it
// here would let two queries with different results share one entry.
func searchCacheKey(kind, query string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", kind, strings.ToLower(strings.TrimSpace(query)), limit)
}

// getFromCache loads a msgpack payload from cache into dest. Returns
// false on miss or on any decode problem; a broken cache entry should
// degrade to recomputing, never to a request failure.
func (s *SearchService) getFromCache(ctx context.Context, key string, dest interface{}) bool {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	payload, ok := value.([]byte)
	if !ok {
		return false
	}
	if err := msgpack.Unmarshal(payload, dest); err != nil {
		s.rec.Warnf("discarding undecodable cache entry %s: %v", key, err)
		return false
	}
	return true
}

// setInCache stores a msgpack payload in cache. Failures are logged and
// swallowed; caching is best-effort.
func (s *SearchService) setInCache(ctx context.Context, key string, value interface{}) {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		s.rec.Warnf("cannot encode cache entry %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.rec.Warnf("cannot store cache entry %s: %v", key, err)
	}
}
