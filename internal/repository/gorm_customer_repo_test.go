package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/pkg/database"
)

func newTestRepo(t *testing.T) *GormCustomerRepository {
	t.Helper()
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "customers.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, &domain.CustomerModel{}))
	return NewGormCustomerRepository(db)
}

func newCustomer(id string) *domain.Customer {
	return &domain.Customer{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "First",
		LastName:  "Last",
		Role:      domain.RoleBuyer,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool     { return &b }

func TestCustomerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	exists, err := repo.Exists(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, exists)

	c := newCustomer("c1")
	c.Tags = []string{"vip"}
	require.NoError(t, repo.Create(ctx, c))
	assert.False(t, c.CreatedAt.IsZero())

	exists, err = repo.Exists(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, newCustomer("c1"))
	assert.ErrorIs(t, err, ErrCustomerExists)

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1@example.com", got.Email)
	assert.Equal(t, []string{"vip"}, got.Tags)

	updated, err := repo.Update(ctx, "c1", &domain.UpdateCustomerRequest{
		CompanyName: strPtr("Acme"),
		Country:     strPtr("de"),
		Verified:    boolPtr(true),
		Tags:        &[]string{"vip", "wholesale"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.CompanyName)
	assert.Equal(t, "DE", updated.Country)
	assert.True(t, updated.Verified)
	assert.Equal(t, []string{"vip", "wholesale"}, updated.Tags)
	assert.Equal(t, "First", updated.FirstName, "absent fields are untouched")

	_, err = repo.Update(ctx, "missing", &domain.UpdateCustomerRequest{CompanyName: strPtr("x")})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "c1"), ErrCustomerNotFound)
}

func TestCustomerRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seed := []struct {
		id       string
		role     string
		country  string
		verified bool
	}{
		{"a", domain.RoleBuyer, "US", true},
		{"b", domain.RoleRetailer, "US", false},
		{"c", domain.RoleRetailer, "DE", true},
		{"d", domain.RoleWholesaler, "DE", true},
	}
	for _, s := range seed {
		c := newCustomer(s.id)
		c.Role = s.role
		c.Country = s.country
		c.Verified = s.verified
		require.NoError(t, repo.Create(ctx, c))
	}

	page, err := repo.List(ctx, &domain.ListCustomersQuery{Role: domain.RoleRetailer, SortBy: "email", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(page.Customers))

	page, err = repo.List(ctx, &domain.ListCustomersQuery{Country: "de", Verified: boolPtr(true), SortBy: "email", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, ids(page.Customers))
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)
}

func TestCustomerRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		c := newCustomer(fmt.Sprintf("c%d", i))
		c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		// Two customers share a company to exercise the id tie-break.
		c.CompanyName = fmt.Sprintf("co%d", i/2)
		require.NoError(t, repo.Create(ctx, c))
	}

	collect := func(q domain.ListCustomersQuery) []string {
		var all []string
		for {
			page, err := repo.List(ctx, &q)
			require.NoError(t, err)
			all = append(all, ids(page.Customers)...)
			if !page.HasMore {
				return all
			}
			require.NotEmpty(t, page.NextCursor)
			q.StartAfter = page.NextCursor
		}
	}

	// Default sort is newest first.
	assert.Equal(t,
		[]string{"c6", "c5", "c4", "c3", "c2", "c1", "c0"},
		collect(domain.ListCustomersQuery{Limit: 3}))

	assert.Equal(t,
		[]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6"},
		collect(domain.ListCustomersQuery{SortBy: "company_name", Order: "asc", Limit: 2}))

	_, err := repo.List(ctx, &domain.ListCustomersQuery{StartAfter: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func ids(customers []domain.Customer) []string {
	out := make([]string, 0, len(customers))
	for _, c := range customers {
		out = append(out, c.ID)
	}
	return out
}
