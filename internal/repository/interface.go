package repository

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerExists   = errors.New("customer already exists")
	ErrInvalidCursor    = errors.New("start_after does not reference an existing customer")
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// CustomerRepository defines the interface for customer record persistence.
type CustomerRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// Update applies the non-nil fields of req and returns the stored record.
	Update(ctx context.Context, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	// List returns one page of customers. The page cursor is the id of the
	// last customer returned.
	List(ctx context.Context, q *domain.ListCustomersQuery) (*domain.CustomerPage, error)
}
