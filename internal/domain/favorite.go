package domain

import (
	"strings"
	"time"
)

// Favorite lists live in one JSON metafield on the customer.
const (
	FavoritesNamespace = "custom"
	FavoritesKey       = "favorite_lists"
	FavoritesType      = "json"
)

// FavoriteList is a named list of product references owned by a customer.
type FavoriteList struct {
	Name       string    `json:"name"`
	ProductIDs []string  `json:"product_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasProduct reports whether the list already references productID.
func (l *FavoriteList) HasProduct(productID string) bool {
	for _, id := range l.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// FindList returns the index of the list named name, or -1. Names match
// case-insensitively after trimming.
func FindList(lists []FavoriteList, name string) int {
	name = strings.TrimSpace(name)
	for i := range lists {
		if strings.EqualFold(strings.TrimSpace(lists[i].Name), name) {
			return i
		}
	}
	return -1
}

// CreateListRequest is the body of a list creation request.
type CreateListRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AddListProductRequest is the body of an add-to-list request.
type AddListProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}
