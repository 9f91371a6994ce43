package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/aponysus/hedgedrpc/provider"
)

func TestNewRegistry_PreSeedsConfiguredProviders(t *testing.T) {
	r := NewRegistry([]provider.ID{"a", "b"})
	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 pre-seeded rows, got %d", len(snap))
	}
	if _, ok := snap["a"]; !ok {
		t.Error("expected row for provider a")
	}
	if _, ok := snap["b"]; !ok {
		t.Error("expected row for provider b")
	}
}

func TestRecordWin_AccumulatesLatency(t *testing.T) {
	r := NewRegistry([]provider.ID{"a"})
	r.RecordWin("a", 100*time.Millisecond)
	r.RecordWin("a", 300*time.Millisecond)

	snap := r.Snapshot()["a"]
	if snap.Wins != 2 {
		t.Fatalf("expected Wins=2, got %d", snap.Wins)
	}
	if snap.AvgWinLatency != 200*time.Millisecond {
		t.Fatalf("expected AvgWinLatency=200ms, got %v", snap.AvgWinLatency)
	}
}

func TestRecordError_IncrementsCount(t *testing.T) {
	r := NewRegistry([]provider.ID{"a"})
	r.RecordError("a")
	r.RecordError("a")
	r.RecordError("a")

	if got := r.Snapshot()["a"].Errors; got != 3 {
		t.Fatalf("expected Errors=3, got %d", got)
	}
}

func TestSnapshot_ZeroWinsHasZeroAvgLatency(t *testing.T) {
	r := NewRegistry([]provider.ID{"a"})
	r.RecordError("a")

	snap := r.Snapshot()["a"]
	if snap.AvgWinLatency != 0 {
		t.Fatalf("expected AvgWinLatency=0 with no wins, got %v", snap.AvgWinLatency)
	}
}

func TestSnapshot_IdempotentWithoutInterveningCalls(t *testing.T) {
	r := NewRegistry([]provider.ID{"a"})
	r.RecordWin("a", 50*time.Millisecond)

	first := r.Snapshot()
	second := r.Snapshot()
	if first["a"] != second["a"] {
		t.Fatalf("expected identical snapshots, got %+v and %+v", first["a"], second["a"])
	}
}

func TestRegistry_ConcurrentAccessIsSafe(t *testing.T) {
	r := NewRegistry([]provider.ID{"a", "b"})
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.RecordWin("a", time.Millisecond)
		}()
		go func() {
			defer wg.Done()
			r.RecordError("b")
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	if snap["a"].Wins != 100 {
		t.Fatalf("expected Wins=100, got %d", snap["a"].Wins)
	}
	if snap["b"].Errors != 100 {
		t.Fatalf("expected Errors=100, got %d", snap["b"].Errors)
	}
}
