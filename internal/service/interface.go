package service

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-storefront-gateway/internal/cache"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

var (
	ErrEmptyQuery        = errors.New("search query is required")
	ErrSearchRateLimited = errors.New("ai search is temporarily rate limited")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerExists    = errors.New("customer already exists")
	ErrInvalidCursor     = errors.New("invalid pagination cursor")
	ErrEmptyUpdate       = errors.New("no fields to update")
	ErrInvalidOwner      = errors.New("owner must be customers or products")
	ErrListNotFound      = errors.New("favorite list not found")
	ErrInvalidListName   = errors.New("list name is required")
	ErrCorruptLists      = errors.New("stored favorite lists are not valid json")
)

// CatalogFetcher returns the flattened product catalog, served from the
// product cache while it is fresh.
type CatalogFetcher interface {
	GetCatalog(ctx context.Context) ([]domain.ProductCapsule, error)
	// Cached returns the current snapshot without fetching.
	Cached(ctx context.Context) (*cache.CatalogSnapshot, bool)
}

// SearchService defines the interface for AI product search.
type SearchService interface {
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
	CacheStats(ctx context.Context) *domain.CacheStats
}

// CustomerService defines the interface for customer record operations.
type CustomerService interface {
	Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.Customer, error)
	Get(ctx context.Context, id string, includeLists bool) (*domain.CustomerDetail, error)
	Update(ctx context.Context, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *domain.ListCustomersQuery) (*domain.CustomerPage, error)
}

// MetafieldService defines the interface for metafield pass-through
// operations. owner is "customers" or "products".
type MetafieldService interface {
	List(ctx context.Context, owner, ownerID, namespace string) ([]domain.Metafield, error)
	Create(ctx context.Context, owner, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error)
	Update(ctx context.Context, owner, ownerID, metafieldID string, in *domain.MetafieldUpdate) (*domain.Metafield, error)
	Delete(ctx context.Context, owner, ownerID, metafieldID string) error
	Set(ctx context.Context, owner, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error)
}

// FavoriteService defines the interface for customer favorite lists.
type FavoriteService interface {
	GetLists(ctx context.Context, customerID string) ([]domain.FavoriteList, error)
	CreateList(ctx context.Context, customerID, name string) (*domain.FavoriteList, error)
	DeleteList(ctx context.Context, customerID, name string) error
	AddProduct(ctx context.Context, customerID, name, productID string) (*domain.FavoriteList, error)
	RemoveProduct(ctx context.Context, customerID, name, productID string) (*domain.FavoriteList, error)
	ListProducts(ctx context.Context, customerID, name string) ([]domain.ProductCapsule, error)
}
