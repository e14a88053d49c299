package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-storefront-gateway/internal/ai"
	"github.com/weiawesome/wes-storefront-gateway/internal/cache"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
)

type searchFixture struct {
	clock    *clock.FakeClock
	upstream *fakeCatalog
	resolver *fakeResolver
	cache    *cache.MemorySearchCache
	svc      SearchService
}

func newSearchFixture(matches ...string) *searchFixture {
	f := &searchFixture{
		clock: clock.NewFake(testNow),
		upstream: &fakeCatalog{pages: []*shopify.ProductPage{{
			Products: []domain.Product{
				product("1", "Red Running Shoes", true),
				product("2", "Green Socks", true),
				product("3", "Red Cap", false),
			},
		}}},
		resolver: &fakeResolver{matches: matches},
		cache:    cache.NewMemorySearchCache(100, 20),
	}
	fetcher := NewCatalogFetcher(f.upstream, cache.NewMemoryProductCache(), f.clock, CatalogConfig{})
	f.svc = NewSearchService(fetcher, f.resolver, f.cache, f.clock, 5*time.Minute)
	return f
}

func TestSearch_MatchesCatalogTitles(t *testing.T) {
	f := newSearchFixture("Red Running Shoes")

	resp, err := f.svc.Search(context.Background(), &domain.SearchRequest{Query: "red shoes"})
	require.NoError(t, err)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Red Running Shoes", resp.Products[0].Title)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 3, resp.TotalSearched)
	assert.Equal(t, "red shoes", resp.Query)
	assert.False(t, resp.Cached)
	assert.Nil(t, resp.CacheAgeSeconds)
}

func TestSearch_UnknownTitleYieldsNothing(t *testing.T) {
	f := newSearchFixture("Blue Hat")

	resp, err := f.svc.Search(context.Background(), &domain.SearchRequest{Query: "blue hat"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Products)
	assert.Empty(t, resp.Products)
	assert.Zero(t, resp.Total)
}

func TestSearch_SkipsCapsulesWithoutImage(t *testing.T) {
	f := newSearchFixture("Red Cap", "Red Running Shoes")

	resp, err := f.svc.Search(context.Background(), &domain.SearchRequest{Query: "red"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Red Running Shoes", resp.Products[0].Title)
}

func TestSearch_ServesFreshResultsFromCache(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture("Red Running Shoes")

	first, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "red shoes"})
	require.NoError(t, err)

	f.clock.Advance(90 * time.Second)
	second, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "  RED Shoes "})
	require.NoError(t, err)

	assert.Equal(t, 1, f.resolver.Calls())
	assert.True(t, second.Cached)
	require.NotNil(t, second.CacheAgeSeconds)
	assert.EqualValues(t, 90, *second.CacheAgeSeconds)

	a, err := json.Marshal(first.Products)
	require.NoError(t, err)
	b, err := json.Marshal(second.Products)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.TotalSearched, second.TotalSearched)
}

func TestSearch_CacheHitEchoesRequestQuery(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture("Red Running Shoes")

	first, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "Red Shoes"})
	require.NoError(t, err)
	assert.Equal(t, "Red Shoes", first.Query)

	second, err := f.svc.Search(ctx, &domain.SearchRequest{Query: " red shoes "})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "red shoes", second.Query)

	third, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "RED SHOES"})
	require.NoError(t, err)
	assert.True(t, third.Cached)
	assert.Equal(t, "RED SHOES", third.Query)
	assert.Equal(t, 1, f.resolver.Calls())
}

func TestSearch_RefreshesStaleResults(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture("Red Running Shoes")

	_, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "red shoes"})
	require.NoError(t, err)

	f.clock.Advance(5 * time.Minute)
	resp, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "red shoes"})
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, 2, f.resolver.Calls())
	assert.Equal(t, 1, f.cache.Len())
}

func TestSearch_EvictsOldestQueries(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture("Red Running Shoes")

	for i := 0; i < 101; i++ {
		f.clock.Advance(time.Millisecond)
		_, err := f.svc.Search(ctx, &domain.SearchRequest{Query: fmt.Sprintf("query %d", i)})
		require.NoError(t, err)
	}
	assert.Equal(t, 81, f.cache.Len())

	_, err := f.cache.Get(ctx, "query 0")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = f.cache.Get(ctx, "query 100")
	assert.NoError(t, err)
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := newSearchFixture()

	_, err := f.svc.Search(context.Background(), &domain.SearchRequest{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, f.upstream.calls())
}

func TestSearch_RateLimited(t *testing.T) {
	f := newSearchFixture()
	f.resolver.err = ai.ErrRateLimited

	_, err := f.svc.Search(context.Background(), &domain.SearchRequest{Query: "red shoes"})
	assert.ErrorIs(t, err, ErrSearchRateLimited)
	assert.Zero(t, f.cache.Len())
}

func TestSearch_OtherFailures(t *testing.T) {
	f := newSearchFixture()
	f.resolver.err = errors.New("model unavailable")

	_, err := f.svc.Search(context.Background(), &domain.SearchRequest{Query: "red shoes"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSearchRateLimited)
	assert.Contains(t, err.Error(), "model unavailable")

	f = newSearchFixture()
	f.upstream.failAt = 1
	_, err = f.svc.Search(context.Background(), &domain.SearchRequest{Query: "red shoes"})
	require.Error(t, err)
	assert.Zero(t, f.resolver.Calls())
}

func TestSearch_CacheStats(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture("Red Running Shoes")

	stats := f.svc.CacheStats(ctx)
	assert.False(t, stats.CatalogCached)
	assert.Zero(t, stats.SearchEntries)

	_, err := f.svc.Search(ctx, &domain.SearchRequest{Query: "red shoes"})
	require.NoError(t, err)
	f.clock.Advance(30 * time.Second)

	stats = f.svc.CacheStats(ctx)
	assert.True(t, stats.CatalogCached)
	assert.Equal(t, 3, stats.CatalogSize)
	assert.EqualValues(t, 30, stats.CatalogAgeSeconds)
	assert.Equal(t, 1, stats.SearchEntries)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "red shoes", NormalizeQuery("  Red SHOES "))
	assert.Equal(t, "strasse", NormalizeQuery("STRASSE"))
	assert.Equal(t, NormalizeQuery("Straße"), NormalizeQuery("strasse"))
}
