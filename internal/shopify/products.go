package shopify

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

const productsQuery = `query($first: Int!, $after: String) {
	products(first: $first, after: $after) {
		edges {
			cursor
			node {
				id
				handle
				title
				vendor
				tags
				description
				status
				productType
				totalInventory
				featuredImage { url }
				priceRangeV2 { minVariantPrice { amount currencyCode } }
				variants(first: 100) {
					edges {
						node {
							id
							title
							price
							sku
							inventoryQuantity
							availableForSale
						}
					}
				}
			}
		}
		pageInfo { hasNextPage endCursor }
	}
}`

type productsData struct {
	Products struct {
		Edges []struct {
			Cursor string      `json:"cursor"`
			Node   productNode `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			HasNextPage bool    `json:"hasNextPage"`
			EndCursor   *string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"products"`
}

type productNode struct {
	ID             string   `json:"id"`
	Handle         string   `json:"handle"`
	Title          string   `json:"title"`
	Vendor         string   `json:"vendor"`
	Tags           []string `json:"tags"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	ProductType    string   `json:"productType"`
	TotalInventory int      `json:"totalInventory"`
	FeaturedImage  *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	PriceRangeV2 struct {
		MinVariantPrice moneyV2 `json:"minVariantPrice"`
	} `json:"priceRangeV2"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type variantNode struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	SKU               *string         `json:"sku"`
	InventoryQuantity *int            `json:"inventoryQuantity"`
	AvailableForSale  bool            `json:"availableForSale"`
}

type moneyV2 struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// ListProducts fetches one page of the product listing.
func (c *Client) ListProducts(ctx context.Context, first int, after string) (*ProductPage, error) {
	vars := map[string]interface{}{"first": first}
	if after != "" {
		vars["after"] = after
	}

	var data productsData
	if err := c.graphql(ctx, productsQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	page := &ProductPage{
		Products:    make([]domain.Product, 0, len(data.Products.Edges)),
		HasNextPage: data.Products.PageInfo.HasNextPage,
	}
	if data.Products.PageInfo.EndCursor != nil {
		page.EndCursor = *data.Products.PageInfo.EndCursor
	}
	for _, e := range data.Products.Edges {
		page.Products = append(page.Products, e.Node.toDomain())
	}
	return page, nil
}

func (n *productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:             n.ID,
		Handle:         n.Handle,
		Title:          n.Title,
		Vendor:         n.Vendor,
		Tags:           n.Tags,
		Description:    n.Description,
		Status:         n.Status,
		ProductType:    n.ProductType,
		MinPrice:       n.PriceRangeV2.MinVariantPrice.Amount,
		Currency:       n.PriceRangeV2.MinVariantPrice.CurrencyCode,
		TotalInventory: n.TotalInventory,
	}
	if n.FeaturedImage != nil && n.FeaturedImage.URL != "" {
		url := n.FeaturedImage.URL
		p.ImageURL = &url
	}

	p.Variants = make([]domain.Variant, 0, len(n.Variants.Edges))
	for _, e := range n.Variants.Edges {
		v := domain.Variant{
			ID:               e.Node.ID,
			Title:            e.Node.Title,
			Price:            e.Node.Price,
			AvailableForSale: e.Node.AvailableForSale,
		}
		if e.Node.SKU != nil {
			v.SKU = *e.Node.SKU
		}
		if e.Node.InventoryQuantity != nil {
			v.InventoryQuantity = *e.Node.InventoryQuantity
		}
		p.Variants = append(p.Variants, v)
	}
	return p
}
