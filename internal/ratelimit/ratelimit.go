// Package ratelimit implements a per-client sliding-window rate limiter.
//
// Each client identifier maps to an ordered slice of request timestamps.
// A check drops timestamps outside the trailing window, denies without
// recording when the surviving count has reached the cap, and otherwise
// records the attempt. A background sweeper bounds memory growth
// independently of check frequency.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultClientID is used when the transport offers no client identity.
// Over stdio the server has exactly one peer, so the limiter degrades to
// a single global bucket.
const DefaultClientID = "default"

const (
	// retention is how long timestamps survive between sweeps.
	retention = 5 * time.Minute

	// sweepInterval is how often the background sweeper runs.
	sweepInterval = 5 * time.Minute
)

// Limiter tracks request timestamps per client identifier.
// The zero value is not usable; create one with New.
type Limiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time

	// now is injectable for tests.
	now func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a Limiter. Call StartSweeper to enable periodic eviction
// and Stop on shutdown.
func New() *Limiter {
	return &Limiter{
		clients: make(map[string][]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Allow reports whether clientID may make another request within the
// trailing window, recording the attempt when it may. A denied attempt
// is not recorded, so being rate-limited never extends the lockout.
func (l *Limiter) Allow(clientID string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-window)

	kept := l.clients[clientID][:0]
	for _, ts := range l.clients[clientID] {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= maxRequests {
		l.clients[clientID] = kept
		return false
	}

	l.clients[clientID] = append(kept, now)
	return true
}

// StartSweeper launches the periodic bulk eviction goroutine.
func (l *Limiter) StartSweeper() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// sweep drops timestamps older than the retention window across all
// clients and deletes clients with nothing left.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-retention)
	for id, stamps := range l.clients {
		kept := stamps[:0]
		for _, ts := range stamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(l.clients, id)
			continue
		}
		l.clients[id] = kept
	}
}

// size reports the number of tracked clients. Test helper.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
