package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CapsuleDescriptionLimit bounds the description kept on a capsule, in runes.
const CapsuleDescriptionLimit = 200

// ProductCapsule is a flattened, search-ready projection of one sellable
// variant (or of a variant-less product).
type ProductCapsule struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id,omitempty"`
	Handle      string          `json:"handle"`
	Title       string          `json:"title"`
	Vendor      string          `json:"vendor"`
	Tags        []string        `json:"tags"`
	ProductType string          `json:"product_type"`
	Description string          `json:"description"`
	Image       *string         `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	SKU         string          `json:"sku"`
	Inventory   int             `json:"inventory"`
	Available   bool            `json:"available"`
	Status      string          `json:"status"`
}

// FlattenProduct turns a product into its capsules: one per variant, or a
// single one when the product has no variants.
func FlattenProduct(p Product) []ProductCapsule {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	base := ProductCapsule{
		ProductID:   p.ID,
		Handle:      p.Handle,
		Vendor:      p.Vendor,
		Tags:        tags,
		ProductType: p.ProductType,
		Description: Truncate(p.Description, CapsuleDescriptionLimit),
		Image:       p.ImageURL,
		Currency:    p.Currency,
		Status:      p.Status,
	}

	if len(p.Variants) == 0 {
		c := base
		c.ID = p.ID
		c.Title = p.Title
		c.Price = p.MinPrice
		c.Inventory = p.TotalInventory
		c.Available = p.TotalInventory > 0
		return []ProductCapsule{c}
	}

	capsules := make([]ProductCapsule, 0, len(p.Variants))
	for _, v := range p.Variants {
		c := base
		c.ID = v.ID
		c.VariantID = v.ID
		c.Title = VariantTitle(p.Title, v.Title)
		c.Price = v.Price
		c.SKU = v.SKU
		c.Inventory = v.InventoryQuantity
		c.Available = v.AvailableForSale
		capsules = append(capsules, c)
	}
	return capsules
}

// VariantTitle composes the capsule title of a variant.
func VariantTitle(productTitle, variantTitle string) string {
	variantTitle = strings.TrimSpace(variantTitle)
	if variantTitle == "" || variantTitle == DefaultVariantTitle {
		return productTitle
	}
	return productTitle + " - " + variantTitle
}

// Truncate cuts s to at most limit runes, appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return strings.TrimSpace(string(r[:limit-3])) + "..."
}
