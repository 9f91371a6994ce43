package observe

import (
	"context"

	"github.com/aponysus/hedgedrpc/provider"
)

// NoopObserver implements Observer with every method a no-op. It is the
// default Observer a Client uses when none is supplied via an Option.
type NoopObserver struct{}

func (NoopObserver) OnStart(context.Context, string, []provider.ID)      {}
func (NoopObserver) OnAttempt(context.Context, string, AttemptRecord)    {}
func (NoopObserver) OnHedgeSpawn(context.Context, string, []provider.ID) {}
func (NoopObserver) OnSuccess(context.Context, string, Timeline)         {}
func (NoopObserver) OnFailure(context.Context, string, Timeline)         {}

// BaseObserver implements Observer with no-op methods. Concrete observers
// embed it so they only need to define the callbacks they care about.
type BaseObserver struct{}

func (BaseObserver) OnStart(context.Context, string, []provider.ID)      {}
func (BaseObserver) OnAttempt(context.Context, string, AttemptRecord)    {}
func (BaseObserver) OnHedgeSpawn(context.Context, string, []provider.ID) {}
func (BaseObserver) OnSuccess(context.Context, string, Timeline)         {}
func (BaseObserver) OnFailure(context.Context, string, Timeline)         {}

// MultiObserver fans every callback out to each non-nil Observer in
// Observers.
type MultiObserver struct {
	Observers []Observer
}

func (m MultiObserver) OnStart(ctx context.Context, method string, initial []provider.ID) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnStart(ctx, method, initial)
		}
	}
}

func (m MultiObserver) OnAttempt(ctx context.Context, method string, rec AttemptRecord) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnAttempt(ctx, method, rec)
		}
	}
}

func (m MultiObserver) OnHedgeSpawn(ctx context.Context, method string, spawned []provider.ID) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnHedgeSpawn(ctx, method, spawned)
		}
	}
}

func (m MultiObserver) OnSuccess(ctx context.Context, method string, tl Timeline) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnSuccess(ctx, method, tl)
		}
	}
}

func (m MultiObserver) OnFailure(ctx context.Context, method string, tl Timeline) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnFailure(ctx, method, tl)
		}
	}
}
