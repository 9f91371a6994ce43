// Package policy defines the hedging strategy for a Client: how many
// providers to contact up front, when to hedge the rest, and the overall
// deadline for a call.
package policy

import "time"

// HedgeConfig is the policy for a single client instance. Every field is
// immutable after construction; callers that need a different policy build
// a new HedgeConfig rather than mutating one in place.
type HedgeConfig struct {
	// InitialProviders is the number of providers contacted at request start.
	// It is clamped to [1, MaxProviders] by Normalize, and to the number of
	// selected providers at call time.
	InitialProviders int

	// HedgeAfter is the wall-clock delay after which, if no attempt has
	// succeeded, the remaining providers (up to MaxProviders) are contacted.
	HedgeAfter time.Duration

	// MaxProviders is the upper bound on providers consulted per request. It
	// is clamped at call time to the number of providers actually configured
	// on the Client.
	MaxProviders int

	// OverallTimeout is the wall-clock ceiling for the entire hedged call,
	// measured from dispatch start.
	OverallTimeout time.Duration

	// MinSlot is an optional freshness floor passed through to
	// freshness-aware operations (e.g. GetAccountFresh's default). The
	// scheduler itself never interprets it; it is a convenience so callers
	// can set one freshness floor on the policy instead of at every call
	// site.
	MinSlot uint64
}

// NormalizationInfo records which fields Normalize had to clamp, mirroring
// the teacher framework's habit of surfacing what changed rather than
// silently coercing bad input.
type NormalizationInfo struct {
	Changed       bool
	ChangedFields []string
}

const (
	minInitialProviders = 1
	minMaxProviders     = 1
)

// Normalize returns a copy of cfg with InitialProviders and MaxProviders
// clamped to sane, non-zero values, plus a record of what it changed.
// Normalize never fails: an invalid HedgeConfig is coerced, not rejected,
// since the core never second-guesses whether to run a call — only how
// many providers to involve.
func (c HedgeConfig) Normalize() (HedgeConfig, NormalizationInfo) {
	normalized := c
	var info NormalizationInfo

	mark := func(field string) {
		info.Changed = true
		info.ChangedFields = append(info.ChangedFields, field)
	}

	if normalized.InitialProviders < minInitialProviders {
		normalized.InitialProviders = minInitialProviders
		mark("initial_providers")
	}

	if normalized.MaxProviders < minMaxProviders {
		normalized.MaxProviders = minMaxProviders
		mark("max_providers")
	}

	if normalized.InitialProviders > normalized.MaxProviders {
		normalized.InitialProviders = normalized.MaxProviders
		mark("initial_providers")
	}

	if normalized.HedgeAfter < 0 {
		normalized.HedgeAfter = 0
		mark("hedge_after")
	}

	if normalized.OverallTimeout < 0 {
		normalized.OverallTimeout = 0
		mark("overall_timeout")
	}

	return normalized, info
}

// allProviders is a generous upper bound used by the presets below in
// place of a caller-supplied provider count: client.New clamps
// MaxProviders down to the real provider count at construction time, so
// the presets never need to know it in advance.
const allProviders = 1<<31 - 1

// LowLatency favors speed: two providers up front, a short hedge delay, a
// tight overall timeout.
func LowLatency() HedgeConfig {
	return HedgeConfig{
		InitialProviders: 2,
		HedgeAfter:       20 * time.Millisecond,
		MaxProviders:     allProviders,
		OverallTimeout:   1 * time.Second,
	}
}

// Conservative favors resource usage: a single provider up front, hedging
// only kicks in if it is slow.
func Conservative() HedgeConfig {
	return HedgeConfig{
		InitialProviders: 1,
		HedgeAfter:       100 * time.Millisecond,
		MaxProviders:     allProviders,
		OverallTimeout:   3 * time.Second,
	}
}

// Aggressive favors latency above all: three providers up front, a short
// hedge delay for whatever is left.
func Aggressive() HedgeConfig {
	return HedgeConfig{
		InitialProviders: 3,
		HedgeAfter:       20 * time.Millisecond,
		MaxProviders:     allProviders,
		OverallTimeout:   1 * time.Second,
	}
}
