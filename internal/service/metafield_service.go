package service

import (
	"context"
	"fmt"

	"github.com/weiawesome/wes-storefront-gateway/internal/audit"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

type metafieldServiceImpl struct {
	store shopify.MetafieldStore
}

// NewMetafieldService creates a new metafield service.
func NewMetafieldService(store shopify.MetafieldStore) MetafieldService {
	return &metafieldServiceImpl{store: store}
}

func validOwner(owner string) error {
	if owner != domain.OwnerCustomers && owner != domain.OwnerProducts {
		return ErrInvalidOwner
	}
	return nil
}

func (s *metafieldServiceImpl) List(ctx context.Context, owner, ownerID, namespace string) ([]domain.Metafield, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}
	return s.store.ListMetafields(ctx, owner, ownerID, namespace)
}

func (s *metafieldServiceImpl) Create(ctx context.Context, owner, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}

	m, err := s.store.CreateMetafield(ctx, owner, ownerID, in)
	if err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionMetafieldCreate, ownerID, in.Namespace+"."+in.Key, "metafield created")
	return m, nil
}

func (s *metafieldServiceImpl) Update(ctx context.Context, owner, ownerID, metafieldID string, in *domain.MetafieldUpdate) (*domain.Metafield, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}

	m, err := s.store.UpdateMetafield(ctx, owner, ownerID, metafieldID, in)
	if err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionMetafieldUpdate, ownerID, metafieldID, "metafield updated")
	return m, nil
}

func (s *metafieldServiceImpl) Delete(ctx context.Context, owner, ownerID, metafieldID string) error {
	if err := validOwner(owner); err != nil {
		return err
	}

	if err := s.store.DeleteMetafield(ctx, owner, ownerID, metafieldID); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionMetafieldDelete, ownerID, metafieldID, "metafield deleted")
	return nil
}

// Set upserts a metafield through the metafieldsSet mutation.
func (s *metafieldServiceImpl) Set(ctx context.Context, owner, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error) {
	gid, err := shopify.OwnerGID(owner, ownerID)
	if err != nil {
		return nil, ErrInvalidOwner
	}

	set, err := s.store.SetMetafields(ctx, []domain.MetafieldSetInput{{
		OwnerID:   gid,
		Namespace: in.Namespace,
		Key:       in.Key,
		Value:     in.Value,
		Type:      in.Type,
	}})
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		l := log.Ctx(ctx)
		l.Warn().Str(log.FieldOwnerID, gid).Msg("metafieldsSet returned no metafield")
		return nil, fmt.Errorf("set metafield: empty result")
	}

	audit.LogWithDetail(ctx, audit.ActionMetafieldSet, gid, in.Namespace+"."+in.Key, "metafield set")
	return &set[0], nil
}
