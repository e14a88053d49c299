package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

// ResolverConfig controls the retry policy of the match resolver.
type ResolverConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	BaseBackoff    time.Duration `mapstructure:"base_backoff"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// DefaultResolverConfig returns three attempts backing off 1s, 2s, 4s with a
// 30s bound per attempt.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		MaxAttempts:    3,
		BaseBackoff:    time.Second,
		AttemptTimeout: 30 * time.Second,
	}
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type matchResolverImpl struct {
	generator TextGenerator
	cfg       ResolverConfig
	sleep     SleepFunc
}

// NewMatchResolver creates a resolver that retries rate-limited generations.
func NewMatchResolver(generator TextGenerator, cfg ResolverConfig) MatchResolver {
	return newMatchResolver(generator, cfg, sleepCtx)
}

func newMatchResolver(generator TextGenerator, cfg ResolverConfig, sleep SleepFunc) *matchResolverImpl {
	def := DefaultResolverConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = def.BaseBackoff
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = def.AttemptTimeout
	}
	return &matchResolverImpl{generator: generator, cfg: cfg, sleep: sleep}
}

func (r *matchResolverImpl) ResolveMatches(ctx context.Context, query string, catalog []domain.ProductCapsule) ([]string, error) {
	l := log.Ctx(ctx)
	prompt := BuildPrompt(query, catalog)

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		text, err := r.generate(ctx, prompt)
		if err == nil {
			return limitMatches(ParseMatches(text)), nil
		}
		if !errors.Is(err, ErrUpstreamRateLimited) {
			return nil, err
		}

		delay := r.cfg.BaseBackoff << (attempt - 1)
		l.Warn().
			Int(log.FieldAttempt, attempt).
			Dur("backoff", delay).
			Msg("generative endpoint rate limited")

		if err := r.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("rate limit backoff interrupted: %w", err)
		}
	}

	return nil, ErrRateLimited
}

func (r *matchResolverImpl) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.AttemptTimeout)
	defer cancel()
	return r.generator.GenerateText(ctx, prompt)
}

// limitMatches trims, de-duplicates and caps the titles at MaxMatches.
func limitMatches(matches []string) []string {
	out := make([]string, 0, MaxMatches)
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) == MaxMatches {
			break
		}
	}
	return out
}
