package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

// ErrOwnerNotFound is returned when the metafield owner does not exist.
var ErrOwnerNotFound = errors.New("metafield owner not found")

// restMetafield is the REST representation of a metafield. Ids are numeric
// and value may be a JSON string or a bare number depending on type.
type restMetafield struct {
	ID        json.Number     `json:"id"`
	Namespace string          `json:"namespace"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Type      string          `json:"type"`
	OwnerID   json.Number     `json:"owner_id"`
	CreatedAt *time.Time      `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}

func (m *restMetafield) toDomain() domain.Metafield {
	return domain.Metafield{
		ID:        m.ID.String(),
		Namespace: m.Namespace,
		Key:       m.Key,
		Value:     rawValue(m.Value),
		Type:      m.Type,
		OwnerID:   m.OwnerID.String(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func rawValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	v := strings.TrimSpace(string(raw))
	if v == "null" {
		return ""
	}
	return v
}

func metafieldsPath(owner, ownerID string) (string, error) {
	if owner != domain.OwnerCustomers && owner != domain.OwnerProducts {
		return "", fmt.Errorf("unsupported metafield owner %q", owner)
	}
	return fmt.Sprintf("/%s/%s/metafields", owner, url.PathEscape(LegacyID(ownerID))), nil
}

// ListMetafields lists the metafields of an owner, optionally filtered by
// namespace.
func (c *Client) ListMetafields(ctx context.Context, owner, ownerID, namespace string) ([]domain.Metafield, error) {
	base, err := metafieldsPath(owner, ownerID)
	if err != nil {
		return nil, err
	}
	path := base + ".json"
	if namespace != "" {
		path += "?namespace=" + url.QueryEscape(namespace)
	}

	var out struct {
		Metafields []restMetafield `json:"metafields"`
	}
	if err := c.rest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list metafields: %w", err)
	}

	result := make([]domain.Metafield, 0, len(out.Metafields))
	for i := range out.Metafields {
		result = append(result, out.Metafields[i].toDomain())
	}
	return result, nil
}

// CreateMetafield creates a metafield on an owner.
func (c *Client) CreateMetafield(ctx context.Context, owner, ownerID string, in *domain.MetafieldInput) (*domain.Metafield, error) {
	base, err := metafieldsPath(owner, ownerID)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"metafield": map[string]interface{}{
			"namespace": in.Namespace,
			"key":       in.Key,
			"value":     in.Value,
			"type":      in.Type,
		},
	}
	var out struct {
		Metafield restMetafield `json:"metafield"`
	}
	if err := c.rest(ctx, http.MethodPost, base+".json", body, &out); err != nil {
		return nil, fmt.Errorf("create metafield: %w", err)
	}

	m := out.Metafield.toDomain()
	return &m, nil
}

// UpdateMetafield replaces the value (and optionally the type) of a metafield.
func (c *Client) UpdateMetafield(ctx context.Context, owner, ownerID, metafieldID string, in *domain.MetafieldUpdate) (*domain.Metafield, error) {
	base, err := metafieldsPath(owner, ownerID)
	if err != nil {
		return nil, err
	}
	id := LegacyID(metafieldID)

	fields := map[string]interface{}{"value": in.Value}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		fields["id"] = n
	}
	if in.Type != "" {
		fields["type"] = in.Type
	}

	var out struct {
		Metafield restMetafield `json:"metafield"`
	}
	path := fmt.Sprintf("%s/%s.json", base, url.PathEscape(id))
	if err := c.rest(ctx, http.MethodPut, path, map[string]interface{}{"metafield": fields}, &out); err != nil {
		return nil, fmt.Errorf("update metafield: %w", err)
	}

	m := out.Metafield.toDomain()
	return &m, nil
}

// DeleteMetafield deletes a metafield.
func (c *Client) DeleteMetafield(ctx context.Context, owner, ownerID, metafieldID string) error {
	base, err := metafieldsPath(owner, ownerID)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("%s/%s.json", base, url.PathEscape(LegacyID(metafieldID)))
	if err := c.rest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete metafield: %w", err)
	}
	return nil
}

const metafieldQuery = `query($id: ID!, $namespace: String!, $key: String!) {
	node(id: $id) {
		id
		... on HasMetafields {
			metafield(namespace: $namespace, key: $key) {
				id namespace key value type createdAt updatedAt
			}
		}
	}
}`

type gqlMetafield struct {
	ID        string     `json:"id"`
	Namespace string     `json:"namespace"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	Type      string     `json:"type"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func (m *gqlMetafield) toDomain(ownerID string) domain.Metafield {
	return domain.Metafield{
		ID:        m.ID,
		Namespace: m.Namespace,
		Key:       m.Key,
		Value:     m.Value,
		Type:      m.Type,
		OwnerID:   ownerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GetMetafield reads one metafield through GraphQL.
func (c *Client) GetMetafield(ctx context.Context, ownerGID, namespace, key string) (*domain.Metafield, error) {
	vars := map[string]interface{}{
		"id":        ownerGID,
		"namespace": namespace,
		"key":       key,
	}

	var data struct {
		Node *struct {
			ID        string        `json:"id"`
			Metafield *gqlMetafield `json:"metafield"`
		} `json:"node"`
	}
	if err := c.graphql(ctx, metafieldQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("get metafield: %w", err)
	}
	if data.Node == nil {
		return nil, ErrOwnerNotFound
	}
	if data.Node.Metafield == nil {
		return nil, nil
	}

	m := data.Node.Metafield.toDomain(ownerGID)
	return &m, nil
}

const metafieldsSetMutation = `mutation($metafields: [MetafieldsSetInput!]!) {
	metafieldsSet(metafields: $metafields) {
		metafields {
			id namespace key value type createdAt updatedAt
			owner { ... on Node { id } }
		}
		userErrors { field message code }
	}
}`

// SetMetafields upserts metafields. userErrors in the payload are returned
// as *UserErrorsError.
func (c *Client) SetMetafields(ctx context.Context, inputs []domain.MetafieldSetInput) ([]domain.Metafield, error) {
	vars := map[string]interface{}{"metafields": inputs}

	var data struct {
		MetafieldsSet *struct {
			Metafields []struct {
				gqlMetafield
				Owner *struct {
					ID string `json:"id"`
				} `json:"owner"`
			} `json:"metafields"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := c.graphql(ctx, metafieldsSetMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("set metafields: %w", err)
	}
	if data.MetafieldsSet == nil {
		return nil, fmt.Errorf("set metafields: empty payload")
	}
	if len(data.MetafieldsSet.UserErrors) > 0 {
		return nil, &UserErrorsError{UserErrors: data.MetafieldsSet.UserErrors}
	}

	result := make([]domain.Metafield, 0, len(data.MetafieldsSet.Metafields))
	for _, m := range data.MetafieldsSet.Metafields {
		ownerID := ""
		if m.Owner != nil {
			ownerID = m.Owner.ID
		}
		result = append(result, m.toDomain(ownerID))
	}
	return result, nil
}
