package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aponysus/hedgedrpc/provider"
)

// rpcRequest is the JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcError is the JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// rpcResponse is the JSON-RPC 2.0 response envelope, decoded generically so
// Invoke can defer decoding Result until it knows there was no Error.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// HTTPHandle is a Handle backed by a single keep-alive *http.Client talking
// JSON-RPC 2.0 over HTTP POST to one provider's endpoint. One HTTPHandle is
// constructed per provider and reused for the lifetime of a Client; the
// underlying *http.Client is never cloned, only the outgoing request is,
// on every call.
type HTTPHandle struct {
	id       provider.ID
	endpoint string
	client   *http.Client
}

// NewHTTPHandle builds an HTTPHandle for the given provider, using client
// for every request it issues. Passing nil uses http.DefaultClient's
// settings via a fresh *http.Client with no extra timeout — callers that
// want an overall deadline should rely on the context passed to Invoke.
func NewHTTPHandle(id provider.ID, endpoint string, client *http.Client) *HTTPHandle {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPHandle{id: id, endpoint: endpoint, client: client}
}

// Invoke implements Handle.
func (h *HTTPHandle) Invoke(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return NewError(KindDecode, h.id, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return NewError(KindNetwork, h.id, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return NewError(KindNetwork, h.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return NewError(KindHTTPStatus, h.id, fmt.Errorf("http status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewError(KindDecode, h.id, err)
	}

	var envelope rpcResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return NewError(KindDecode, h.id, err)
	}

	if envelope.Error != nil {
		return NewError(KindRPCError, h.id, envelope.Error)
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return NewError(KindDecode, h.id, err)
		}
	}

	return nil
}
