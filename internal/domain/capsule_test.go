package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenProduct_OneCapsulePerVariant(t *testing.T) {
	img := "https://cdn/shoe.png"
	p := Product{
		ID:          "gid://shopify/Product/1",
		Handle:      "runner",
		Title:       "Runner",
		Vendor:      "Acme",
		Tags:        []string{"shoes"},
		Description: "Light",
		Status:      "ACTIVE",
		ImageURL:    &img,
		Currency:    "USD",
		Variants: []Variant{
			{ID: "v1", Title: "Red / 42", Price: decimal.RequireFromString("59.90"), SKU: "R-42", InventoryQuantity: 3, AvailableForSale: true},
			{ID: "v2", Title: "Blue / 43", Price: decimal.RequireFromString("64.00"), InventoryQuantity: 0},
		},
	}

	got := FlattenProduct(p)
	require.Len(t, got, 2)

	assert.Equal(t, "v1", got[0].ID)
	assert.Equal(t, "gid://shopify/Product/1", got[0].ProductID)
	assert.Equal(t, "Runner - Red / 42", got[0].Title)
	assert.Equal(t, "59.9", got[0].Price.String())
	assert.Equal(t, "R-42", got[0].SKU)
	assert.True(t, got[0].Available)
	assert.Same(t, &img, got[0].Image)

	assert.Equal(t, "Runner - Blue / 43", got[1].Title)
	assert.False(t, got[1].Available)
}

func TestFlattenProduct_DefaultTitleAndNoVariants(t *testing.T) {
	single := FlattenProduct(Product{
		ID:       "p",
		Title:    "Cap",
		Variants: []Variant{{ID: "v", Title: DefaultVariantTitle, Price: decimal.NewFromInt(10)}},
	})
	require.Len(t, single, 1)
	assert.Equal(t, "Cap", single[0].Title)

	bare := FlattenProduct(Product{ID: "p2", Title: "Gift card", MinPrice: decimal.NewFromInt(25), TotalInventory: 4})
	require.Len(t, bare, 1)
	assert.Equal(t, "p2", bare[0].ID)
	assert.Empty(t, bare[0].VariantID)
	assert.Equal(t, "25", bare[0].Price.String())
	assert.True(t, bare[0].Available)
	assert.NotNil(t, bare[0].Tags)
	assert.Nil(t, bare[0].Image)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("  short ", 200))

	long := strings.Repeat("ü", 250)
	got := Truncate(long, CapsuleDescriptionLimit)
	assert.Len(t, []rune(got), CapsuleDescriptionLimit)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFindList(t *testing.T) {
	lists := []FavoriteList{{Name: "Wishlist"}, {Name: "Gifts"}}
	assert.Equal(t, 0, FindList(lists, " wishlist "))
	assert.Equal(t, 1, FindList(lists, "GIFTS"))
	assert.Equal(t, -1, FindList(lists, "other"))

	l := FavoriteList{ProductIDs: []string{"a"}}
	assert.True(t, l.HasProduct("a"))
	assert.False(t, l.HasProduct("b"))
}
