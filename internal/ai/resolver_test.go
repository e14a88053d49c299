package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

type fakeGenerator struct {
	mu        sync.Mutex
	calls     int
	responses []fakeResponse
	deadlines []bool
}

type fakeResponse struct {
	text string
	err  error
}

// GenerateText replays responses in order, repeating the last one.
func (g *fakeGenerator) GenerateText(ctx context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := ctx.Deadline()
	g.deadlines = append(g.deadlines, ok)
	i := g.calls
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	g.calls++
	return g.responses[i].text, g.responses[i].err
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type recordedSleep struct {
	delays []time.Duration
}

func (s *recordedSleep) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

var testCatalog = []domain.ProductCapsule{{Title: "Red Running Shoes"}}

func TestResolveMatches_Success(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{text: `{"matches":["Red Running Shoes","Red Running Shoes"]}`}}}
	sl := &recordedSleep{}
	r := newMatchResolver(gen, DefaultResolverConfig(), sl.sleep)

	got, err := r.ResolveMatches(context.Background(), "red shoes", testCatalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Running Shoes"}, got)
	assert.Equal(t, 1, gen.Calls())
	assert.Empty(t, sl.delays)
	assert.Equal(t, []bool{true}, gen.deadlines)
}

func TestResolveMatches_RetriesRateLimitThenFails(t *testing.T) {
	rateLimited := fakeResponse{err: ErrUpstreamRateLimited}
	gen := &fakeGenerator{responses: []fakeResponse{rateLimited, rateLimited, rateLimited, {text: `{"matches":["x"]}`}}}
	sl := &recordedSleep{}
	r := newMatchResolver(gen, DefaultResolverConfig(), sl.sleep)

	_, err := r.ResolveMatches(context.Background(), "red shoes", testCatalog)
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 3, gen.Calls())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sl.delays)
}

func TestResolveMatches_RecoversAfterRateLimit(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{err: ErrUpstreamRateLimited},
		{text: `{"matches":["Red Running Shoes"]}`},
	}}
	sl := &recordedSleep{}
	r := newMatchResolver(gen, DefaultResolverConfig(), sl.sleep)

	got, err := r.ResolveMatches(context.Background(), "red shoes", testCatalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Running Shoes"}, got)
	assert.Equal(t, 2, gen.Calls())
	assert.Equal(t, []time.Duration{time.Second}, sl.delays)
}

func TestResolveMatches_OtherErrorsAreNotRetried(t *testing.T) {
	boom := errors.New("upstream exploded")
	for _, upstreamErr := range []error{boom, context.DeadlineExceeded} {
		gen := &fakeGenerator{responses: []fakeResponse{{err: upstreamErr}}}
		sl := &recordedSleep{}
		r := newMatchResolver(gen, DefaultResolverConfig(), sl.sleep)

		_, err := r.ResolveMatches(context.Background(), "red shoes", testCatalog)
		require.ErrorIs(t, err, upstreamErr)
		assert.NotErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, 1, gen.Calls())
		assert.Empty(t, sl.delays)
	}
}

func TestResolveMatches_UnparseableAnswerIsEmpty(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{text: "no idea"}}}
	r := newMatchResolver(gen, DefaultResolverConfig(), (&recordedSleep{}).sleep)

	got, err := r.ResolveMatches(context.Background(), "red shoes", testCatalog)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveMatches_BackoffHonoursCancellation(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{err: ErrUpstreamRateLimited}}}
	r := NewMatchResolver(gen, ResolverConfig{MaxAttempts: 3, BaseBackoff: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveMatches(ctx, "red shoes", testCatalog)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gen.Calls())
}
