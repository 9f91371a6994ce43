// Package observe defines the lifecycle callbacks a hedged call emits and
// a handful of concrete Observer implementations: a no-op default, an
// OpenTelemetry tracer, and a Prometheus collector. The core Scheduler
// never logs directly — every observable event flows through an Observer
// so callers choose their own telemetry backend, or none at all.
package observe

import (
	"context"
	"time"

	"github.com/aponysus/hedgedrpc/provider"
)

// AttemptRecord describes a single provider attempt within one hedged call.
type AttemptRecord struct {
	Provider  provider.ID
	Attempt   int
	IsHedge   bool
	StartTime time.Time
	EndTime   time.Time
	Err       error
}

// Timeline is the structured record of one hedged call and of the attempts
// whose results the scheduler consumed before the call resolved, in the
// order they completed. Attempts still in flight when the call resolved
// are not included.
type Timeline struct {
	// CallID is a per-call correlation id, minted once per hedged call and
	// carried on the Timeline passed to OnSuccess/OnFailure, so a caller can
	// match the outcome to the OTel span in an external trace viewer.
	// OnStart, OnAttempt and OnHedgeSpawn do not receive it.
	CallID   string
	Method   string
	Start    time.Time
	End      time.Time
	Winner   provider.ID
	Attempts []AttemptRecord
	FinalErr error
}

// Observer receives lifecycle callbacks for a single hedged call. Every
// method must be safe to call from multiple goroutines concurrently, since
// attempts race against each other.
type Observer interface {
	// OnStart fires once, when the initial wave of attempts is dispatched.
	OnStart(ctx context.Context, method string, initial []provider.ID)
	// OnAttempt fires once per attempt, whether it is part of the initial
	// wave or a later hedge.
	OnAttempt(ctx context.Context, method string, rec AttemptRecord)
	// OnHedgeSpawn fires when the hedge timer fires and additional
	// providers are dispatched.
	OnHedgeSpawn(ctx context.Context, method string, spawned []provider.ID)
	// OnSuccess fires once, when a winning attempt is selected.
	OnSuccess(ctx context.Context, method string, tl Timeline)
	// OnFailure fires once, when every dispatched provider has failed or
	// the overall timeout elapsed before any attempt succeeded.
	OnFailure(ctx context.Context, method string, tl Timeline)
}
