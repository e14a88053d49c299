package domain

import "github.com/shopspring/decimal"

// DefaultVariantTitle is the title the commerce platform gives the single
// implicit variant of a product without options.
const DefaultVariantTitle = "Default Title"

// Product is a catalog product as returned by the Admin API product listing.
type Product struct {
	ID             string
	Handle         string
	Title          string
	Vendor         string
	Tags           []string
	Description    string
	Status         string
	ProductType    string
	ImageURL       *string
	MinPrice       decimal.Decimal
	Currency       string
	TotalInventory int
	Variants       []Variant
}

// Variant is a sellable variant of a Product.
type Variant struct {
	ID                string
	Title             string
	Price             decimal.Decimal
	SKU               string
	InventoryQuantity int
	AvailableForSale  bool
}
