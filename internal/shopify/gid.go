package shopify

import (
	"fmt"
	"strings"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

const gidPrefix = "gid://shopify/"

// GID returns the global id of a resource, accepting either a numeric id or
// an existing GID.
func GID(resource, id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return gidPrefix + resource + "/" + id
}

// CustomerGID returns the GID of a customer.
func CustomerGID(id string) string { return GID("Customer", id) }

// ProductGID returns the GID of a product.
func ProductGID(id string) string { return GID("Product", id) }

// LegacyID returns the trailing numeric part of a GID, or id unchanged.
func LegacyID(id string) string {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, gidPrefix) {
		return id
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	// Strip query parameters some GIDs carry.
	if i := strings.IndexByte(id, '?'); i >= 0 {
		id = id[:i]
	}
	return id
}

// OwnerGID returns the GID of a metafield owner resource.
func OwnerGID(owner, id string) (string, error) {
	switch owner {
	case domain.OwnerCustomers:
		return CustomerGID(id), nil
	case domain.OwnerProducts:
		return ProductGID(id), nil
	default:
		return "", fmt.Errorf("unsupported metafield owner %q", owner)
	}
}
