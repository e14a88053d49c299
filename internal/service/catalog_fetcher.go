package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weiawesome/wes-storefront-gateway/internal/cache"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

// CatalogConfig configures catalog fetching.
type CatalogConfig struct {
	TTL      time.Duration `mapstructure:"catalog_ttl"`
	PageSize int           `mapstructure:"page_size"`
}

const (
	defaultCatalogTTL = 10 * time.Minute
	defaultPageSize   = 250
)

type catalogFetcherImpl struct {
	products shopify.ProductCatalog
	cache    cache.ProductCache
	clock    clock.Clock
	ttl      time.Duration
	pageSize int
}

// NewCatalogFetcher creates a catalog fetcher. Concurrent callers that find
// the snapshot stale each fetch the catalog; the last one to finish wins.
func NewCatalogFetcher(products shopify.ProductCatalog, productCache cache.ProductCache, clk clock.Clock, cfg CatalogConfig) CatalogFetcher {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultCatalogTTL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &catalogFetcherImpl{
		products: products,
		cache:    productCache,
		clock:    clk,
		ttl:      cfg.TTL,
		pageSize: cfg.PageSize,
	}
}

func (f *catalogFetcherImpl) GetCatalog(ctx context.Context) ([]domain.ProductCapsule, error) {
	l := log.Ctx(ctx)

	snapshot, err := f.cache.Get(ctx)
	switch {
	case err == nil && f.clock.Now().Sub(snapshot.FetchedAt) < f.ttl:
		return snapshot.Capsules, nil
	case err != nil && !errors.Is(err, cache.ErrCacheMiss):
		l.Warn().Err(err).Msg("product cache get error")
	}

	start := f.clock.Now()
	capsules, pages, err := f.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	fetchedAt := f.clock.Now()
	if err := f.cache.Set(ctx, &cache.CatalogSnapshot{Capsules: capsules, FetchedAt: fetchedAt}); err != nil {
		l.Warn().Err(err).Msg("product cache set error")
	}

	l.Info().
		Int("capsules", len(capsules)).
		Int("pages", pages).
		Dur("elapsed", fetchedAt.Sub(start)).
		Msg("product catalog refreshed")

	return capsules, nil
}

// fetchAll pages through the product listing. Any page failure discards
// everything fetched so far.
func (f *catalogFetcherImpl) fetchAll(ctx context.Context) ([]domain.ProductCapsule, int, error) {
	var (
		capsules []domain.ProductCapsule
		cursor   string
		pages    int
	)

	for {
		pages++
		page, err := f.products.ListProducts(ctx, f.pageSize, cursor)
		if err != nil {
			return nil, pages, fmt.Errorf("fetch catalog page %d: %w", pages, err)
		}

		for _, p := range page.Products {
			capsules = append(capsules, domain.FlattenProduct(p)...)
		}

		if !page.HasNextPage {
			break
		}
		if page.EndCursor == "" || page.EndCursor == cursor {
			return nil, pages, fmt.Errorf("fetch catalog page %d: next page reported without a new cursor", pages)
		}
		cursor = page.EndCursor
	}

	if capsules == nil {
		capsules = []domain.ProductCapsule{}
	}
	return capsules, pages, nil
}

func (f *catalogFetcherImpl) Cached(ctx context.Context) (*cache.CatalogSnapshot, bool) {
	snapshot, err := f.cache.Get(ctx)
	if err != nil {
		return nil, false
	}
	return snapshot, true
}
