package authz

import (
	"context"
	"sync"
	"time"

	"clinic-consent-api/internal/clock"
)

// Entry pairs a Request with whatever the caller wants to run once it is
// granted.
type Entry[T any] struct {
	Request *Request
	Data    T

	// done is when a sweep first saw the request finished.
	done time.Time
}

// Registry indexes requests by id for callers that submit codes across
// separate RPCs. Finished requests stay as tombstones for the retention
// period so a late submit still learns how the request ended.
type Registry[T any] struct {
	clock  clock.Clock
	retain time.Duration

	mu      sync.Mutex
	entries map[string]*Entry[T]
}

func NewRegistry[T any](clk clock.Clock, retain time.Duration) *Registry[T] {
	return &Registry[T]{clock: clk, retain: retain, entries: make(map[string]*Entry[T])}
}

func (g *Registry[T]) Add(r *Request, data T) {
	g.mu.Lock()
	g.entries[r.ID] = &Entry[T]{Request: r, Data: data}
	g.mu.Unlock()
}

// Get returns live requests and tombstones alike; check Request.Outcome.
func (g *Registry[T]) Get(id string) (*Entry[T], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[id]
	return e, ok
}

func (g *Registry[T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// Sweep expires requests whose step has elapsed, so no ledger row outlives
// its code, and evicts tombstones older than the retention period. Returns
// the number evicted.
func (g *Registry[T]) Sweep(ctx context.Context) int {
	g.mu.Lock()
	all := make([]*Entry[T], 0, len(g.entries))
	for _, e := range g.entries {
		all = append(all, e)
	}
	g.mu.Unlock()

	finished := make([]*Entry[T], 0, len(all))
	for _, e := range all {
		if e.Request.Poll(ctx) {
			finished = append(finished, e)
		}
	}

	now := g.clock.Now()
	n := 0
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range finished {
		if e.done.IsZero() {
			e.done = now
			continue
		}
		if now.Sub(e.done) >= g.retain {
			delete(g.entries, e.Request.ID)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (g *Registry[T]) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			g.Sweep(ctx)
		}
	}
}
