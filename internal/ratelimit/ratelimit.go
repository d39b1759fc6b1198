// Package ratelimit provides a sliding-window token budget used for request
// admission. Consumption is recorded as (timestamp, tokens) samples; the sum
// over the trailing window decides whether new work is admitted.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow is the trailing interval over which consumption is summed.
const DefaultWindow = time.Minute

type sample struct {
	at     time.Time
	tokens int
}

// Limiter tracks token consumption over a rolling window. All methods are
// safe for concurrent use; the read-modify-write around pruning and summing
// is serialised by a single mutex.
type Limiter struct {
	mu      sync.Mutex
	ceiling int
	window  time.Duration
	samples []sample
	now     func() time.Time
}

// New returns a Limiter that admits work while the windowed token sum stays
// below ceiling. A non-positive window falls back to DefaultWindow.
func New(ceiling int, window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{ceiling: ceiling, window: window, now: time.Now}
}

// Record appends a consumption sample and prunes entries that fell outside
// the window.
func (l *Limiter) Record(tokens int) {
	if tokens < 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
	l.samples = append(l.samples, sample{at: l.now(), tokens: tokens})
}

// IsOverLimit reports whether the windowed token sum has reached the ceiling.
func (l *Limiter) IsOverLimit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.prune(now)
	total := 0
	for _, s := range l.samples {
		total += s.tokens
	}
	return total >= l.ceiling
}

// prune drops samples older than the window. Caller must hold the mutex.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.samples[:0]
	for _, s := range l.samples {
		if s.at.After(cutoff) {
			kept = append(kept, s)
		}
	}
	l.samples = kept
}
