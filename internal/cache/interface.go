package cache

import (
	"context"
	"errors"
	"time"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// CatalogSnapshot is a complete product catalog fetch.
type CatalogSnapshot struct {
	Capsules  []domain.ProductCapsule
	FetchedAt time.Time
}

// ProductCache holds at most one catalog snapshot. A snapshot is replaced
// wholesale; readers never observe a partially written one.
type ProductCache interface {
	Get(ctx context.Context) (*CatalogSnapshot, error)
	Set(ctx context.Context, snapshot *CatalogSnapshot) error
}

// SearchEntry is a cached search result and the time it was stored.
type SearchEntry struct {
	Result   domain.SearchResult
	StoredAt time.Time
}

// SearchCache maps normalized queries to search results.
type SearchCache interface {
	Get(ctx context.Context, key string) (*SearchEntry, error)
	// Set stores the entry and returns how many entries were evicted.
	Set(ctx context.Context, key string, entry *SearchEntry) (int, error)
	Len() int
}
