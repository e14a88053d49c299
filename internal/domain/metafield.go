package domain

import "time"

// Metafield owner resources.
const (
	OwnerCustomers = "customers"
	OwnerProducts  = "products"
)

// Metafield is a namespaced key-value attribute attached to a customer or
// product.
type Metafield struct {
	ID        string     `json:"id"`
	Namespace string     `json:"namespace"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	Type      string     `json:"type"`
	OwnerID   string     `json:"owner_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// MetafieldInput is the body of a metafield create or upsert request.
type MetafieldInput struct {
	Namespace string `json:"namespace" binding:"required,min=2,max=255"`
	Key       string `json:"key" binding:"required,min=2,max=64"`
	Value     string `json:"value" binding:"required"`
	Type      string `json:"type" binding:"required"`
}

// MetafieldUpdate is the body of a metafield update request.
type MetafieldUpdate struct {
	Value string `json:"value" binding:"required"`
	Type  string `json:"type"`
}

// MetafieldSetInput targets one metafield of one owner in a bulk upsert.
type MetafieldSetInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// UserError is a validation error reported inside a mutation payload.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}
