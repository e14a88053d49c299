package domain

import "time"

// SearchRequest is the AI search request. The query may come from the JSON
// body or the q query parameter.
type SearchRequest struct {
	Query string `json:"query" form:"q"`
}

// SearchResult is the cacheable part of a search response.
type SearchResult struct {
	Products      []ProductCapsule `json:"products"`
	Total         int              `json:"total"`
	TotalSearched int              `json:"total_searched"`
	Query         string           `json:"query"`
}

// SearchResponse is a SearchResult annotated with its cache provenance.
type SearchResponse struct {
	SearchResult
	Cached          bool   `json:"cached"`
	CacheAgeSeconds *int64 `json:"cache_age_seconds,omitempty"`
}

// CacheStats describes the state of the search caches.
type CacheStats struct {
	CatalogCached     bool       `json:"catalog_cached"`
	CatalogSize       int        `json:"catalog_size"`
	CatalogFetchedAt  *time.Time `json:"catalog_fetched_at,omitempty"`
	CatalogAgeSeconds int64      `json:"catalog_age_seconds"`
	SearchEntries     int        `json:"search_entries"`
}
