package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/weiawesome/wes-storefront-gateway/internal/ai"
	"github.com/weiawesome/wes-storefront-gateway/internal/cache"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

const defaultResultTTL = 5 * time.Minute

type searchServiceImpl struct {
	fetcher   CatalogFetcher
	resolver  ai.MatchResolver
	cache     cache.SearchCache
	clock     clock.Clock
	resultTTL time.Duration
}

// NewSearchService creates a new search service.
func NewSearchService(fetcher CatalogFetcher, resolver ai.MatchResolver, searchCache cache.SearchCache, clk clock.Clock, resultTTL time.Duration) SearchService {
	if resultTTL <= 0 {
		resultTTL = defaultResultTTL
	}
	return &searchServiceImpl{
		fetcher:   fetcher,
		resolver:  resolver,
		cache:     searchCache,
		clock:     clk,
		resultTTL: resultTTL,
	}
}

// NormalizeQuery returns the cache key of a query.
func NormalizeQuery(q string) string {
	// A Caser keeps state, so one is created per call.
	return strings.TrimSpace(cases.Fold().String(strings.TrimSpace(q)))
}

func (s *searchServiceImpl) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := NormalizeQuery(query)
	l := log.Ctx(ctx).With().Str(log.FieldCacheKey, key).Logger()

	entry, err := s.cache.Get(ctx, key)
	if err == nil {
		age := s.clock.Now().Sub(entry.StoredAt)
		if age < s.resultTTL {
			secs := int64(age / time.Second)
			l.Debug().Int64("age_seconds", secs).Msg("search cache hit")
			result := entry.Result
			result.Query = query
			return &domain.SearchResponse{
				SearchResult:    result,
				Cached:          true,
				CacheAgeSeconds: &secs,
			}, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("search cache get error")
	}

	catalog, err := s.fetcher.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	matches, err := s.resolver.ResolveMatches(ctx, query, catalog)
	if err != nil {
		if errors.Is(err, ai.ErrRateLimited) {
			return nil, fmt.Errorf("%w: %v", ErrSearchRateLimited, err)
		}
		return nil, fmt.Errorf("resolve matches: %w", err)
	}

	result := domain.SearchResult{
		Products:      filterMatches(catalog, matches),
		TotalSearched: len(catalog),
		Query:         query,
	}
	result.Total = len(result.Products)

	evicted, err := s.cache.Set(ctx, key, &cache.SearchEntry{Result: result, StoredAt: s.clock.Now()})
	if err != nil {
		l.Warn().Err(err).Msg("search cache set error")
	} else if evicted > 0 {
		l.Debug().Int("evicted", evicted).Msg("search cache evicted oldest entries")
	}

	l.Info().
		Int("matches", len(matches)).
		Int("products", result.Total).
		Int("catalog_size", result.TotalSearched).
		Msg("search completed")

	return &domain.SearchResponse{SearchResult: result}, nil
}

// filterMatches keeps the capsules named by the resolver that have an image,
// in catalog order.
func filterMatches(catalog []domain.ProductCapsule, matches []string) []domain.ProductCapsule {
	products := make([]domain.ProductCapsule, 0, len(matches))
	if len(matches) == 0 {
		return products
	}

	titles := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		titles[m] = struct{}{}
	}
	for _, c := range catalog {
		if _, ok := titles[c.Title]; ok && c.Image != nil {
			products = append(products, c)
		}
	}
	return products
}

func (s *searchServiceImpl) CacheStats(ctx context.Context) *domain.CacheStats {
	stats := &domain.CacheStats{SearchEntries: s.cache.Len()}
	if snapshot, ok := s.fetcher.Cached(ctx); ok {
		fetchedAt := snapshot.FetchedAt
		stats.CatalogCached = true
		stats.CatalogSize = len(snapshot.Capsules)
		stats.CatalogFetchedAt = &fetchedAt
		stats.CatalogAgeSeconds = int64(s.clock.Now().Sub(fetchedAt) / time.Second)
	}
	return stats
}
