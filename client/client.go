// Package client assembles the Transport Handle, Hedging Scheduler, and
// Statistics Registry into the public surface an application actually
// calls: a Client constructed once from a provider list and a hedging
// policy, offering one method per JSON-RPC operation.
package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aponysus/hedgedrpc/hedge"
	"github.com/aponysus/hedgedrpc/observe"
	"github.com/aponysus/hedgedrpc/policy"
	"github.com/aponysus/hedgedrpc/provider"
	"github.com/aponysus/hedgedrpc/stats"
	"github.com/aponysus/hedgedrpc/transport"
)

// Client owns an ordered list of providers, a normalized hedging policy,
// and the statistics registry shared by every call made through it. A
// Client is safe for concurrent use by multiple goroutines; many hedged
// calls may be in flight on the same instance at once.
type Client struct {
	order    []provider.ID
	handles  map[provider.ID]transport.Handle
	cfg      policy.HedgeConfig
	tracker  stats.Tracker
	observer observe.Observer
}

// Option configures optional aspects of a Client at construction time.
type Option func(*options)

type options struct {
	observer   observe.Observer
	httpClient *http.Client
	tracker    stats.Tracker
}

// WithObserver attaches obs to every call the Client makes. The default is
// observe.NoopObserver{}.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithHTTPClient overrides the *http.Client used to build each provider's
// transport.HTTPHandle. The default is a bare &http.Client{} per provider.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTracker injects a pre-built stats.Tracker in place of the default
// *stats.Registry, primarily so tests can substitute a fake or assert on a
// tracker they already hold a reference to.
func WithTracker(tracker stats.Tracker) Option {
	return func(o *options) { o.tracker = tracker }
}

// New builds a Client from an ordered provider list and a hedging policy.
// Order is the hedging priority order: providers are contacted in this
// order subject to cfg's initial/max provider counts. cfg is normalized
// before use (see policy.HedgeConfig.Normalize) and its MaxProviders is
// further clamped to len(providers).
func New(providers []provider.Config, cfg policy.HedgeConfig, opts ...Option) (*Client, error) {
	if len(providers) == 0 {
		return nil, hedge.NoProviders{}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	normalized, _ := cfg.Normalize()
	if normalized.MaxProviders > len(providers) {
		normalized.MaxProviders = len(providers)
	}

	order := make([]provider.ID, 0, len(providers))
	handles := make(map[provider.ID]transport.Handle, len(providers))
	for _, p := range providers {
		if _, dup := handles[p.ID]; dup {
			return nil, fmt.Errorf("hedgedrpc: duplicate provider id %q", p.ID)
		}
		order = append(order, p.ID)
		handles[p.ID] = transport.NewHTTPHandle(p.ID, p.Endpoint, o.httpClient)
	}

	tracker := o.tracker
	if tracker == nil {
		tracker = stats.NewRegistry(order)
	}

	observer := o.observer
	if observer == nil {
		observer = observe.NoopObserver{}
	}

	return &Client{
		order:    order,
		handles:  handles,
		cfg:      normalized,
		tracker:  tracker,
		observer: observer,
	}, nil
}

// Providers returns the client's configured providers in hedging priority
// order. The returned slice is a copy; mutating it does not affect the
// Client.
func (c *Client) Providers() []provider.ID {
	return append([]provider.ID(nil), c.order...)
}

// ProviderStats returns a point-in-time snapshot of every provider's
// counters.
func (c *Client) ProviderStats() map[provider.ID]stats.Snapshot {
	return c.tracker.Snapshot()
}

// race binds fn, a closure over one provider's transport.Handle, into a
// hedge.AttemptFunc and runs it through the scheduler.
func race[T any](ctx context.Context, c *Client, method string, fn func(ctx context.Context, h transport.Handle) (T, error)) (provider.ID, T, error) {
	attempt := func(ctx context.Context, id provider.ID) (T, error) {
		return fn(ctx, c.handles[id])
	}
	return hedge.Race(ctx, c.order, c.cfg, c.tracker, c.observer, method, attempt)
}
