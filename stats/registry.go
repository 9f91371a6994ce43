// Package stats tracks per-provider outcome counters for a Client: how
// often a provider won a race, its accumulated winning latency, and how
// often it failed. It holds no latency percentiles and no history beyond
// the running totals — the hedging policy is static and never consults
// these counters, so there is no need to keep more than a snapshot needs.
package stats

import (
	"sync"
	"time"

	"github.com/aponysus/hedgedrpc/provider"
)

// Snapshot is the read-only view of one provider's counters at the moment
// Registry.Snapshot was called.
type Snapshot struct {
	Wins          uint64
	Errors        uint64
	AvgWinLatency time.Duration
}

// Tracker is the counter-table capability the Scheduler and Client need
// from a statistics store. *Registry is the only production implementation;
// the interface exists so tests can substitute a fake. Latencies are
// measured by the caller and passed in; a Tracker reads no clock.
type Tracker interface {
	RecordWin(id provider.ID, latency time.Duration)
	RecordError(id provider.ID)
	Snapshot() map[provider.ID]Snapshot
}

// Registry is a concurrent-safe table of per-provider counters. The zero
// value is not usable; construct one with NewRegistry.
type Registry struct {
	mu   sync.Mutex
	rows map[provider.ID]*counters
}

var _ Tracker = (*Registry)(nil)

type counters struct {
	wins              uint64
	errors            uint64
	totalWinLatencyMs uint64
}

// NewRegistry builds an empty Registry tracking the given providers. Known
// providers are pre-seeded so Snapshot reports zero-valued rows for a
// provider that has never won or failed, rather than omitting it.
func NewRegistry(providers []provider.ID) *Registry {
	r := &Registry{rows: make(map[provider.ID]*counters, len(providers))}
	for _, id := range providers {
		r.rows[id] = &counters{}
	}
	return r
}

// RecordWin credits id with a win at the given latency.
func (r *Registry) RecordWin(id provider.ID, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.row(id)
	c.wins++
	c.totalWinLatencyMs += uint64(latency.Milliseconds())
}

// RecordError credits id with a failed attempt.
func (r *Registry) RecordError(id provider.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.row(id).errors++
}

// row returns id's counters, creating a zero row if id was not pre-seeded.
// Callers must hold r.mu.
func (r *Registry) row(id provider.ID) *counters {
	c, ok := r.rows[id]
	if !ok {
		c = &counters{}
		r.rows[id] = c
	}
	return c
}

// Snapshot returns a point-in-time copy of every tracked provider's
// counters. The map returned is safe for the caller to retain and mutate;
// it shares no state with the Registry.
func (r *Registry) Snapshot() map[provider.ID]Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[provider.ID]Snapshot, len(r.rows))
	for id, c := range r.rows {
		s := Snapshot{Wins: c.wins, Errors: c.errors}
		if c.wins > 0 {
			s.AvgWinLatency = time.Duration(c.totalWinLatencyMs/c.wins) * time.Millisecond
		}
		out[id] = s
	}
	return out
}
