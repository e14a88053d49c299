package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/repository"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// fakeCatalog serves fixed pages and records the cursors it was asked for.
type fakeCatalog struct {
	mu      sync.Mutex
	pages   []*shopify.ProductPage
	failAt  int // 1-based page number that fails, 0 for none
	cursors []string
}

func (f *fakeCatalog) ListProducts(_ context.Context, first int, after string) (*shopify.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if first != 250 {
		return nil, fmt.Errorf("unexpected page size %d", first)
	}
	f.cursors = append(f.cursors, after)
	n := len(f.cursors)
	if f.failAt == n {
		return nil, &shopify.APIError{StatusCode: 502, Body: "bad gateway"}
	}
	if n > len(f.pages) {
		return nil, fmt.Errorf("unexpected page %d", n)
	}
	return f.pages[n-1], nil
}

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cursors)
}

func product(id, title string, image bool, variants ...string) domain.Product {
	p := domain.Product{
		ID:             "gid://shopify/Product/" + id,
		Handle:         id,
		Title:          title,
		MinPrice:       decimal.NewFromInt(10),
		Currency:       "USD",
		TotalInventory: 5,
	}
	if image {
		url := "https://cdn.example.com/" + id + ".png"
		p.ImageURL = &url
	}
	for i, v := range variants {
		p.Variants = append(p.Variants, domain.Variant{
			ID:               fmt.Sprintf("gid://shopify/ProductVariant/%s%d", id, i),
			Title:            v,
			Price:            decimal.NewFromInt(int64(10 + i)),
			AvailableForSale: true,
		})
	}
	return p
}

// fakeResolver returns canned matches and counts calls.
type fakeResolver struct {
	mu      sync.Mutex
	matches []string
	err     error
	calls   int
}

func (r *fakeResolver) ResolveMatches(_ context.Context, _ string, _ []domain.ProductCapsule) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.matches, r.err
}

func (r *fakeResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// memoryMetafieldStore keeps metafields per owner GID.
type memoryMetafieldStore struct {
	mu         sync.Mutex
	values     map[string]map[string]domain.Metafield
	owners     map[string]bool
	setCalls   int
	setErr     error
	lastInputs []domain.MetafieldSetInput
}

func newMemoryMetafieldStore(ownerGIDs ...string) *memoryMetafieldStore {
	s := &memoryMetafieldStore{
		values: make(map[string]map[string]domain.Metafield),
		owners: make(map[string]bool),
	}
	for _, gid := range ownerGIDs {
		s.owners[gid] = true
	}
	return s
}

func (s *memoryMetafieldStore) ListMetafields(context.Context, string, string, string) ([]domain.Metafield, error) {
	return []domain.Metafield{}, nil
}

func (s *memoryMetafieldStore) CreateMetafield(_ context.Context, _, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error) {
	return &domain.Metafield{ID: "1", Namespace: in.Namespace, Key: in.Key, Value: in.Value, Type: in.Type, OwnerID: ownerID}, nil
}

func (s *memoryMetafieldStore) UpdateMetafield(_ context.Context, _, ownerID, metafieldID string, in *domain.MetafieldUpdate) (*domain.Metafield, error) {
	return &domain.Metafield{ID: metafieldID, Value: in.Value, Type: in.Type, OwnerID: ownerID}, nil
}

func (s *memoryMetafieldStore) DeleteMetafield(context.Context, string, string, string) error {
	return nil
}

func (s *memoryMetafieldStore) GetMetafield(_ context.Context, ownerGID, namespace, key string) (*domain.Metafield, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owners[ownerGID] {
		return nil, shopify.ErrOwnerNotFound
	}
	m, ok := s.values[ownerGID][namespace+"."+key]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *memoryMetafieldStore) SetMetafields(_ context.Context, inputs []domain.MetafieldSetInput) ([]domain.Metafield, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	s.lastInputs = inputs
	if s.setErr != nil {
		return nil, s.setErr
	}
	out := make([]domain.Metafield, 0, len(inputs))
	for _, in := range inputs {
		m := domain.Metafield{
			ID:        "gid://shopify/Metafield/1",
			Namespace: in.Namespace,
			Key:       in.Key,
			Value:     in.Value,
			Type:      in.Type,
			OwnerID:   in.OwnerID,
		}
		if s.values[in.OwnerID] == nil {
			s.values[in.OwnerID] = make(map[string]domain.Metafield)
		}
		s.values[in.OwnerID][in.Namespace+"."+in.Key] = m
		out = append(out, m)
	}
	return out, nil
}

func (s *memoryMetafieldStore) raw(ownerGID, namespace, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[ownerGID][namespace+"."+key].Value
}

// memoryCustomerRepo is an in-memory CustomerRepository.
type memoryCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{customers: make(map[string]domain.Customer)}
}

func (r *memoryCustomerRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.customers[id]
	return ok, nil
}

func (r *memoryCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; ok {
		return repository.ErrCustomerExists
	}
	c.CreatedAt, c.UpdatedAt = testNow, testNow
	r.customers[c.ID] = *c
	return nil
}

func (r *memoryCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *memoryCustomerRepo) Update(_ context.Context, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.CompanyName != nil {
		c.CompanyName = *req.CompanyName
	}
	if req.Verified != nil {
		c.Verified = *req.Verified
	}
	r.customers[id] = c
	return &c, nil
}

func (r *memoryCustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memoryCustomerRepo) List(_ context.Context, q *domain.ListCustomersQuery) (*domain.CustomerPage, error) {
	if q.StartAfter == "missing" {
		return nil, repository.ErrInvalidCursor
	}
	return &domain.CustomerPage{Customers: []domain.Customer{}}, nil
}

// recordingNotifier records the customers it was told about.
type recordingNotifier struct {
	mu        sync.Mutex
	customers []string
}

func (n *recordingNotifier) CustomerRegistered(_ context.Context, c *domain.Customer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.customers = append(n.customers, c.ID)
}
