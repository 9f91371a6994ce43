package hedge

import (
	"fmt"
	"strings"
	"time"

	"github.com/aponysus/hedgedrpc/provider"
)

// NoProviders is returned when a Race is asked to run with zero providers
// selected — there is nothing to race.
type NoProviders struct{}

func (NoProviders) Error() string { return "hedgedrpc: no providers configured" }

// ProviderFailure pairs a provider with the error its attempt returned.
type ProviderFailure struct {
	Provider provider.ID
	Err      error
}

func (f ProviderFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Provider, f.Err)
}

func (f ProviderFailure) Unwrap() error { return f.Err }

// AllFailed is returned when every provider that was dispatched for a call
// failed before any attempt succeeded.
type AllFailed struct {
	Failures []ProviderFailure
}

func (e *AllFailed) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("hedgedrpc: all %d provider(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Timeout is returned when the overall deadline for a call elapsed before
// any provider succeeded, regardless of whether attempts were still
// outstanding.
type Timeout struct {
	Bound time.Duration
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("hedgedrpc: call exceeded overall timeout of %s", e.Bound)
}
