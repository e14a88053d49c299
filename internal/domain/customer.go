package domain

import "time"

// Customer roles.
const (
	RoleBuyer       = "buyer"
	RoleRetailer    = "retailer"
	RoleWholesaler  = "wholesaler"
	RoleDistributor = "distributor"
)

// Customer is the gateway's record of a storefront customer, keyed by the
// commerce platform customer id.
type Customer struct {
	ID            string    `json:"customer_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	Website       string    `json:"website,omitempty"`
	EmployeeCount string    `json:"employee_count,omitempty"`
	Country       string    `json:"country,omitempty"`
	Verified      bool      `json:"verified"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName returns "First Last".
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// CreateCustomerRequest represents a customer creation request.
type CreateCustomerRequest struct {
	CustomerID    string   `json:"customer_id" binding:"required,max=64"`
	Email         string   `json:"email" binding:"required,email"`
	FirstName     string   `json:"first_name" binding:"required,max=100"`
	LastName      string   `json:"last_name" binding:"required,max=100"`
	Role          string   `json:"role" binding:"required,oneof=buyer retailer wholesaler distributor"`
	Phone         string   `json:"phone" binding:"omitempty,e164"`
	CompanyName   string   `json:"company_name" binding:"omitempty,max=200"`
	Website       string   `json:"website" binding:"omitempty,url"`
	EmployeeCount string   `json:"employee_count" binding:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Country       string   `json:"country" binding:"omitempty,country"`
	Tags          []string `json:"tags" binding:"omitempty,max=50,dive,max=64"`
}

// UpdateCustomerRequest represents a partial customer update. Nil fields
// are left untouched.
type UpdateCustomerRequest struct {
	Email         *string   `json:"email" binding:"omitempty,email"`
	FirstName     *string   `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName      *string   `json:"last_name" binding:"omitempty,min=1,max=100"`
	Role          *string   `json:"role" binding:"omitempty,oneof=buyer retailer wholesaler distributor"`
	Phone         *string   `json:"phone" binding:"omitempty,e164"`
	CompanyName   *string   `json:"company_name" binding:"omitempty,max=200"`
	Website       *string   `json:"website" binding:"omitempty,url"`
	EmployeeCount *string   `json:"employee_count" binding:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Country       *string   `json:"country" binding:"omitempty,country"`
	Verified      *bool     `json:"verified"`
	Tags          *[]string `json:"tags" binding:"omitempty,max=50"`
}

// IsEmpty reports whether the update carries no field at all.
func (r *UpdateCustomerRequest) IsEmpty() bool {
	return r.Email == nil && r.FirstName == nil && r.LastName == nil &&
		r.Role == nil && r.Phone == nil && r.CompanyName == nil &&
		r.Website == nil && r.EmployeeCount == nil && r.Country == nil &&
		r.Verified == nil && r.Tags == nil
}

// Sort directions for customer listings.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListCustomersQuery filters, sorts and paginates customer listings.
type ListCustomersQuery struct {
	Role       string `form:"role" binding:"omitempty,oneof=buyer retailer wholesaler distributor"`
	Verified   *bool  `form:"verified"`
	Country    string `form:"country" binding:"omitempty,country"`
	SortBy     string `form:"sort" binding:"omitempty,oneof=created_at updated_at email company_name"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	StartAfter string `form:"start_after"`
}

// CustomerPage is one page of a customer listing.
type CustomerPage struct {
	Customers  []Customer `json:"customers"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}

// CustomerDetail is a customer optionally enriched with favorite lists.
type CustomerDetail struct {
	Customer
	Lists []FavoriteList `json:"lists,omitempty"`
}
