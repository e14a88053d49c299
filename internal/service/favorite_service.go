package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/weiawesome/wes-storefront-gateway/internal/audit"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

type favoriteServiceImpl struct {
	store   shopify.MetafieldStore
	fetcher CatalogFetcher
	clock   clock.Clock
}

// NewFavoriteService creates a favorite list service. All lists of a
// customer are read and written as a single JSON metafield, so concurrent
// writers for the same customer follow last-writer-wins.
func NewFavoriteService(store shopify.MetafieldStore, fetcher CatalogFetcher, clk clock.Clock) FavoriteService {
	return &favoriteServiceImpl{store: store, fetcher: fetcher, clock: clk}
}

func (s *favoriteServiceImpl) GetLists(ctx context.Context, customerID string) ([]domain.FavoriteList, error) {
	return s.readLists(ctx, customerID)
}

func (s *favoriteServiceImpl) CreateList(ctx context.Context, customerID, name string) (*domain.FavoriteList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidListName
	}

	lists, err := s.readLists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if i := domain.FindList(lists, name); i >= 0 {
		return &lists[i], nil
	}

	list := domain.FavoriteList{
		Name:       name,
		ProductIDs: []string{},
		CreatedAt:  s.clock.Now().UTC(),
	}
	lists = append(lists, list)
	if err := s.writeLists(ctx, customerID, lists); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionListCreate, customerID, name, "favorite list created")
	return &list, nil
}

func (s *favoriteServiceImpl) DeleteList(ctx context.Context, customerID, name string) error {
	lists, err := s.readLists(ctx, customerID)
	if err != nil {
		return err
	}
	i := domain.FindList(lists, name)
	if i < 0 {
		return ErrListNotFound
	}

	lists = append(lists[:i], lists[i+1:]...)
	if err := s.writeLists(ctx, customerID, lists); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionListDelete, customerID, name, "favorite list deleted")
	return nil
}

func (s *favoriteServiceImpl) AddProduct(ctx context.Context, customerID, name, productID string) (*domain.FavoriteList, error) {
	lists, err := s.readLists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	i := domain.FindList(lists, name)
	if i < 0 {
		return nil, ErrListNotFound
	}

	gid := shopify.ProductGID(productID)
	if lists[i].HasProduct(gid) {
		return &lists[i], nil
	}

	lists[i].ProductIDs = append(lists[i].ProductIDs, gid)
	if err := s.writeLists(ctx, customerID, lists); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionListAddItem, customerID, lists[i].Name+":"+gid, "product added to favorite list")
	return &lists[i], nil
}

func (s *favoriteServiceImpl) RemoveProduct(ctx context.Context, customerID, name, productID string) (*domain.FavoriteList, error) {
	lists, err := s.readLists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	i := domain.FindList(lists, name)
	if i < 0 {
		return nil, ErrListNotFound
	}

	gid := shopify.ProductGID(productID)
	kept := make([]string, 0, len(lists[i].ProductIDs))
	for _, id := range lists[i].ProductIDs {
		if id != gid {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(lists[i].ProductIDs) {
		return &lists[i], nil
	}

	lists[i].ProductIDs = kept
	if err := s.writeLists(ctx, customerID, lists); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionListRemoveItem, customerID, lists[i].Name+":"+gid, "product removed from favorite list")
	return &lists[i], nil
}

// ListProducts resolves a list against the cached catalog. Products no
// longer in the catalog are skipped.
func (s *favoriteServiceImpl) ListProducts(ctx context.Context, customerID, name string) ([]domain.ProductCapsule, error) {
	lists, err := s.readLists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	i := domain.FindList(lists, name)
	if i < 0 {
		return nil, ErrListNotFound
	}

	catalog, err := s.fetcher.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	byProduct := make(map[string][]domain.ProductCapsule)
	for _, c := range catalog {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}

	products := make([]domain.ProductCapsule, 0, len(lists[i].ProductIDs))
	for _, id := range lists[i].ProductIDs {
		products = append(products, byProduct[id]...)
	}
	return products, nil
}

func (s *favoriteServiceImpl) readLists(ctx context.Context, customerID string) ([]domain.FavoriteList, error) {
	m, err := s.store.GetMetafield(ctx, shopify.CustomerGID(customerID), domain.FavoritesNamespace, domain.FavoritesKey)
	if err != nil {
		if errors.Is(err, shopify.ErrOwnerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	lists := []domain.FavoriteList{}
	if m == nil || strings.TrimSpace(m.Value) == "" {
		return lists, nil
	}
	if err := json.Unmarshal([]byte(m.Value), &lists); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldCustomerID, customerID).Msg("failed to decode favorite lists")
		return nil, fmt.Errorf("%w: %v", ErrCorruptLists, err)
	}
	for i := range lists {
		if lists[i].ProductIDs == nil {
			lists[i].ProductIDs = []string{}
		}
	}
	return lists, nil
}

func (s *favoriteServiceImpl) writeLists(ctx context.Context, customerID string, lists []domain.FavoriteList) error {
	value, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("failed to encode favorite lists: %w", err)
	}

	_, err = s.store.SetMetafields(ctx, []domain.MetafieldSetInput{{
		OwnerID:   shopify.CustomerGID(customerID),
		Namespace: domain.FavoritesNamespace,
		Key:       domain.FavoritesKey,
		Value:     string(value),
		Type:      domain.FavoritesType,
	}})
	return err
}
