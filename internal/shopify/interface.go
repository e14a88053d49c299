package shopify

import (
	"context"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

// ProductPage is one page of the cursor-paginated product listing.
type ProductPage struct {
	Products    []domain.Product
	HasNextPage bool
	EndCursor   string
}

// ProductCatalog lists catalog products page by page.
type ProductCatalog interface {
	ListProducts(ctx context.Context, first int, after string) (*ProductPage, error)
}

// MetafieldStore manages metafields on customers and products.
// owner is domain.OwnerCustomers or domain.OwnerProducts; ownerID may be a
// numeric id or a GID.
type MetafieldStore interface {
	ListMetafields(ctx context.Context, owner, ownerID, namespace string) ([]domain.Metafield, error)
	CreateMetafield(ctx context.Context, owner, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error)
	UpdateMetafield(ctx context.Context, owner, ownerID, metafieldID string, in *domain.MetafieldUpdate) (*domain.Metafield, error)
	DeleteMetafield(ctx context.Context, owner, ownerID, metafieldID string) error

	// GetMetafield reads a single metafield by namespace and key. It returns
	// (nil, nil) when the owner has no such metafield.
	GetMetafield(ctx context.Context, ownerGID, namespace, key string) (*domain.Metafield, error)
	// SetMetafields upserts metafields with the metafieldsSet mutation.
	SetMetafields(ctx context.Context, inputs []domain.MetafieldSetInput) ([]domain.Metafield, error)
}

// AdminClient is the full Admin API surface used by the gateway.
type AdminClient interface {
	ProductCatalog
	MetafieldStore
}
