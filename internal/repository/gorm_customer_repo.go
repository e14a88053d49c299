package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/pkg/database"
)

// sortColumns whitelists the sortable columns.
var sortColumns = map[string]struct{}{
	"created_at":   {},
	"updated_at":   {},
	"email":        {},
	"company_name": {},
}

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM-based customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Exists reports whether a customer record exists.
func (r *GormCustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CustomerModel{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a new customer record.
func (r *GormCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if customer.Tags == nil {
		customer.Tags = []string{}
	}

	model := domain.CustomerToModel(customer)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return r.handleError(err)
	}

	// Update the domain object with generated timestamps
	customer.CreatedAt = model.CreatedAt
	customer.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves a customer by id.
func (r *GormCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	model, err := r.getModel(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCustomerRepository) getModel(db *gorm.DB, id string) (*domain.CustomerModel, error) {
	var model domain.CustomerModel
	if err := db.First(&model, "customer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &model, nil
}

// Update applies a partial update.
func (r *GormCustomerRepository) Update(ctx context.Context, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	var updated *domain.CustomerModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.getModel(tx, id); err != nil {
			return err
		}

		if fields := updateFields(req); len(fields) > 0 {
			if err := tx.Model(&domain.CustomerModel{}).
				Where("customer_id = ?", id).
				Updates(fields).Error; err != nil {
				return err
			}
		}

		m, err := r.getModel(tx, id)
		if err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated.ToDomain(), nil
}

func updateFields(req *domain.UpdateCustomerRequest) map[string]interface{} {
	fields := make(map[string]interface{})
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}

	setString("email", req.Email)
	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("role", req.Role)
	setString("phone", req.Phone)
	setString("company_name", req.CompanyName)
	setString("website", req.Website)
	setString("employee_count", req.EmployeeCount)
	if req.Country != nil {
		fields["country"] = strings.ToUpper(strings.TrimSpace(*req.Country))
	}
	if req.Verified != nil {
		fields["verified"] = *req.Verified
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		fields["tags"] = database.StringArray(tags)
	}
	return fields
}

// Delete permanently deletes a customer record.
func (r *GormCustomerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.CustomerModel{}, "customer_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// List filters, sorts and paginates customers. Rows are ordered by the sort
// column with the customer id as tie-breaker, so a start_after cursor
// resumes exactly after the referenced row.
func (r *GormCustomerRepository) List(ctx context.Context, q *domain.ListCustomersQuery) (*domain.CustomerPage, error) {
	sortBy, order, limit := normalizeListQuery(q)
	db := r.db.WithContext(ctx)

	query := db.Model(&domain.CustomerModel{})
	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}
	if q.Verified != nil {
		query = query.Where("verified = ?", *q.Verified)
	}
	if q.Country != "" {
		query = query.Where("country = ?", strings.ToUpper(q.Country))
	}

	cmp := ">"
	if order == domain.SortDesc {
		cmp = "<"
	}

	if q.StartAfter != "" {
		anchor, err := r.getModel(db, q.StartAfter)
		if err != nil {
			if errors.Is(err, ErrCustomerNotFound) {
				return nil, ErrInvalidCursor
			}
			return nil, err
		}
		value := sortValue(anchor, sortBy)
		query = query.Where(
			fmt.Sprintf("((%s %s ?) OR (%s = ? AND customer_id %s ?))", sortBy, cmp, sortBy, cmp),
			value, value, anchor.CustomerID,
		)
	}

	var models []domain.CustomerModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Order(fmt.Sprintf("customer_id %s", order)).
		Limit(limit + 1).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	page := &domain.CustomerPage{Customers: make([]domain.Customer, 0, limit)}
	if len(models) > limit {
		page.HasMore = true
		models = models[:limit]
	}
	for i := range models {
		page.Customers = append(page.Customers, *models[i].ToDomain())
	}
	if page.HasMore {
		page.NextCursor = models[len(models)-1].CustomerID
	}
	return page, nil
}

func normalizeListQuery(q *domain.ListCustomersQuery) (sortBy, order string, limit int) {
	sortBy = q.SortBy
	if _, ok := sortColumns[sortBy]; !ok {
		sortBy = "created_at"
	}
	order = q.Order
	if order != domain.SortAsc {
		order = domain.SortDesc
	}
	limit = q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return sortBy, order, limit
}

func sortValue(m *domain.CustomerModel, column string) interface{} {
	switch column {
	case "updated_at":
		return m.UpdatedAt
	case "email":
		return m.Email
	case "company_name":
		return m.CompanyName
	default:
		return m.CreatedAt
	}
}

// handleError converts database-specific errors to domain errors.
func (r *GormCustomerRepository) handleError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCustomerExists
	}

	errStr := err.Error()
	// PostgreSQL, SQLite and MySQL unique constraint violations
	if strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "Duplicate entry") {
		return ErrCustomerExists
	}

	return err
}
