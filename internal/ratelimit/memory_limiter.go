package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
)

// fixedWindow is one key's window. It opens on the key's first request and
// its bucket is replaced when the window closes.
type fixedWindow struct {
	start   time.Time
	limiter *rate.Limiter
}

// MemoryLimiter keeps a fixed window per key, like RedisLimiter: at most
// requests are allowed between a window's first request and its end.
type MemoryLimiter struct {
	mu        sync.Mutex
	requests  int
	window    time.Duration
	clock     clock.Clock
	windows   map[string]*fixedWindow
	lastSweep time.Time
}

// NewMemoryLimiter allows requests per window for each key.
func NewMemoryLimiter(requests int, window time.Duration, clk clock.Clock) *MemoryLimiter {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &MemoryLimiter{
		requests:  requests,
		window:    window,
		clock:     clk,
		windows:   make(map[string]*fixedWindow),
		lastSweep: clk.Now(),
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= m.window {
		// One token per window refills strictly after the window closes, so
		// the bucket never grants more than its burst before it is replaced.
		w = &fixedWindow{
			start:   now,
			limiter: rate.NewLimiter(rate.Every(m.window), m.requests),
		}
		m.windows[key] = w
	}

	if w.limiter.AllowN(now, 1) {
		return true, 0, nil
	}
	return false, w.start.Add(m.window).Sub(now), nil
}

// Len returns the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func (m *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.window {
		return
	}
	for key, w := range m.windows {
		if now.Sub(w.start) >= m.window {
			delete(m.windows, key)
		}
	}
	m.lastSweep = now
}
