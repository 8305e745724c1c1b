// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rateguard

import (
	"context"
	"sync"
	"time"
)

// Defaults match the production limiter in front of the vote endpoint:
// 10 accepted attempts per source per 15 minutes.
const (
	DefaultLimit  = 10
	DefaultWindow = 15 * time.Minute
)

// Guard is a fixed-window counter keyed by source (typically client IP).
// Each key gets an independent window; once a key's count reaches the
// limit, further attempts are rejected until the window started more than
// Window ago, at which point the count resets wholesale. The check is
// in-memory and non-blocking.
type Guard struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*windowEntry

	now func() time.Time // swapped out in tests
}

type windowEntry struct {
	start time.Time
	count int
}

func New(limit int, window time.Duration) *Guard {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Guard{
		limit:   limit,
		window:  window,
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Allow reports whether an action from key is within quota and, if so,
// counts it. A rejected attempt is not counted and has no other side
// effect.
func (g *Guard) Allow(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	e, ok := g.entries[key]
	if !ok || now.Sub(e.start) >= g.window {
		g.entries[key] = &windowEntry{start: now, count: 1}
		return true
	}

	if e.count >= g.limit {
		return false
	}
	e.count++
	return true
}

// Run prunes expired windows every half window until ctx is cancelled, so
// idle keys do not accumulate. Allow does not depend on it for
// correctness.
func (g *Guard) Run(ctx context.Context) {
	ticker := time.NewTicker(g.window / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.prune()
		}
	}
}

func (g *Guard) prune() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for key, e := range g.entries {
		if now.Sub(e.start) >= g.window {
			delete(g.entries, key)
		}
	}
}
