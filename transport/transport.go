// Package transport defines the capability a Client needs from one
// provider's endpoint: invoke a caller-supplied RPC and produce a typed
// result or a transport-level error. It does not know which JSON-RPC
// method it is executing — that is the caller's concern.
package transport

import (
	"context"

	"github.com/aponysus/hedgedrpc/provider"
)

// Handle represents a single endpoint and is safe to share across
// concurrent callers. A faithful implementation holds a persistent HTTP
// client with connection keep-alive, shared across every call the handle
// ever makes.
type Handle interface {
	// Invoke performs method with params against this provider's endpoint
	// and decodes the result into result (a pointer). It returns a
	// *TransportError on any transport-kind failure: connection failure,
	// HTTP non-2xx, JSON parse failure, or a server-reported JSON-RPC error.
	Invoke(ctx context.Context, method string, params any, result any) error
}

// ErrorKind tags the family of failure a TransportError represents, so
// observability layers can group failures without parsing error strings.
type ErrorKind int

const (
	// KindUnknown is never produced by NewError; it is the zero value.
	KindUnknown ErrorKind = iota
	// KindNetwork covers connection failures and context deadline/cancel.
	KindNetwork
	// KindHTTPStatus covers a non-2xx HTTP response.
	KindHTTPStatus
	// KindDecode covers a request that failed to encode as JSON and a
	// response body that could not be read or parsed as JSON.
	KindDecode
	// KindRPCError covers a well-formed JSON-RPC response carrying an
	// "error" object.
	KindRPCError
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	case KindRPCError:
		return "rpc_error"
	default:
		return "unknown"
	}
}

// TransportError is the uniform error every Handle implementation is
// expected to return for any non-success outcome. It carries enough
// context for the statistics registry and the caller's failure list
// without requiring them to understand the underlying transport.
type TransportError struct {
	Kind     ErrorKind
	Provider provider.ID
	Err      error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "transport error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return string(e.Provider) + ": " + e.Kind.String() + ": " + msg
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a TransportError tagging it with the given kind.
func NewError(kind ErrorKind, id provider.ID, err error) *TransportError {
	return &TransportError{Kind: kind, Provider: id, Err: err}
}
