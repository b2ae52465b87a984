// Package ratelimit implements the per-client request gate guarding the
// ingestion API. State is process-local by design: the guarded resource
// (external API quota) is global, and this gate only sheds abusive local load.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Limiter is a sliding-window request counter keyed by client address.
type Limiter struct {
	window  time.Duration
	max     int
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*windowState
}

type windowState struct {
	count   int
	resetAt time.Time
}

// New creates a limiter allowing max requests per window for each client key.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		now:     time.Now,
		clients: make(map[string]*windowState),
	}
}

// SetNow replaces the clock, for tests.
func (l *Limiter) SetNow(now func() time.Time) {
	l.now = now
}

// Allow records a request for key. When the request exceeds the window
// budget it returns false along with the whole seconds remaining until
// the window resets.
func (l *Limiter) Allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, ok := l.clients[key]
	if !ok || now.After(state.resetAt) {
		l.clients[key] = &windowState{count: 1, resetAt: now.Add(l.window)}
		return true, 0
	}

	state.count++
	if state.count > l.max {
		retryAfter := int(math.Ceil(state.resetAt.Sub(now).Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		return false, retryAfter
	}
	return true, 0
}

// Prune drops expired windows. Called opportunistically; correctness does
// not depend on it.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, state := range l.clients {
		if now.After(state.resetAt) {
			delete(l.clients, key)
		}
	}
}
