package ai

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

var (
	// ErrUpstreamRateLimited marks a single generation call rejected with 429.
	ErrUpstreamRateLimited = errors.New("generative endpoint rate limited")
	// ErrRateLimited is returned once every retry attempt was rate limited.
	ErrRateLimited = errors.New("ai search rate limited, retries exhausted")
)

// TextGenerator sends a single prompt to a generative text endpoint and
// returns the text of the first candidate.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// MatchResolver picks the catalog titles that answer a free-text query.
type MatchResolver interface {
	ResolveMatches(ctx context.Context, query string, catalog []domain.ProductCapsule) ([]string, error)
}
