package client

import "fmt"

// StaleResponse is the synthetic error an attempt returns when a provider's
// answer is slot-wise older than the caller's requested freshness floor. It
// is surfaced through the ordinary hedge.AllFailed channel rather than a
// dedicated error kind, so a freshness violation looks like any other
// attempt failure to the scheduler — the source this client is modeled on
// does the same, trading a slightly conflated error surface for a single
// place callers need to check.
type StaleResponse struct {
	MinSlot uint64
	Got     uint64
}

func (e *StaleResponse) Error() string {
	return fmt.Sprintf("stale response: wanted slot >= %d, got %d", e.MinSlot, e.Got)
}
