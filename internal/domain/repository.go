package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository defines the interface for catalog persistence.
// List returns items in stable insertion order; the search layer depends
// on that ordering for deterministic suggestion output.
type CatalogRepository interface {
	List(ctx context.Context) ([]CatalogItem, error)
	GetByID(ctx context.Context, id int64) (*CatalogItem, error)
	Create(ctx context.Context, item *CatalogItem) error
	Update(ctx context.Context, item *CatalogItem) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
