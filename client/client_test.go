package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aponysus/hedgedrpc/hedge"
	"github.com/aponysus/hedgedrpc/policy"
	"github.com/aponysus/hedgedrpc/provider"
)

func rpcServer(t *testing.T, delay time.Duration, result string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}))
}

func TestClient_GetSlot_FastestProviderWins(t *testing.T) {
	fast := rpcServer(t, 5*time.Millisecond, "42")
	slow := rpcServer(t, 200*time.Millisecond, "99")
	defer fast.Close()
	defer slow.Close()

	c, err := New([]provider.Config{
		provider.New("fast", fast.URL),
		provider.New("slow", slow.URL),
	}, policy.HedgeConfig{InitialProviders: 2, HedgeAfter: 100 * time.Millisecond, MaxProviders: 2, OverallTimeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	winner, slot, err := c.GetSlot(context.Background(), CommitmentConfirmed)
	if err != nil {
		t.Fatalf("GetSlot: %v", err)
	}
	if winner != "fast" {
		t.Fatalf("expected winner fast, got %s", winner)
	}
	if slot != 42 {
		t.Fatalf("expected slot=42, got %d", slot)
	}

	snap := c.ProviderStats()
	if snap["fast"].Wins != 1 {
		t.Fatalf("expected fast.wins=1, got %d", snap["fast"].Wins)
	}
}

func TestClient_GetAccountFresh_StaleWinnerYieldsAllFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":90},"value":null}}`))
	}))
	defer srv.Close()

	c, err := New([]provider.Config{provider.New("only", srv.URL)}, policy.Conservative())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _, err = c.GetAccountFresh(context.Background(), "Pubkey111", CommitmentConfirmed, 100)
	if err == nil {
		t.Fatal("expected error for stale response")
	}
	var allFailed *hedge.AllFailed
	if !errors.As(err, &allFailed) {
		t.Fatalf("expected *hedge.AllFailed, got %T: %v", err, err)
	}

	snap := c.ProviderStats()
	if snap["only"].Errors != 1 {
		t.Fatalf("expected only.errors=1, got %d", snap["only"].Errors)
	}
	if snap["only"].Wins != 0 {
		t.Fatalf("expected only.wins=0 for a stale response, got %d", snap["only"].Wins)
	}
}

func TestClient_GetLatestBlockhash_DecodesValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result": map[string]any{
				"context": map[string]any{"slot": 10},
				"value": map[string]any{
					"blockhash":            "abc123",
					"lastValidBlockHeight": 500,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New([]provider.Config{provider.New("only", srv.URL)}, policy.Conservative())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := c.GetLatestBlockhashAny(context.Background(), CommitmentFinalized)
	if err != nil {
		t.Fatalf("GetLatestBlockhashAny: %v", err)
	}
	if resp.Value.Blockhash != "abc123" {
		t.Fatalf("expected blockhash=abc123, got %s", resp.Value.Blockhash)
	}
	if resp.Context.Slot != 10 {
		t.Fatalf("expected slot=10, got %d", resp.Context.Slot)
	}
}

func TestNew_RejectsEmptyProviderList(t *testing.T) {
	if _, err := New(nil, policy.Conservative()); err == nil {
		t.Fatal("expected error for empty provider list")
	}
}

func TestNew_RejectsDuplicateProviderID(t *testing.T) {
	_, err := New([]provider.Config{
		provider.New("dup", "http://a.example"),
		provider.New("dup", "http://b.example"),
	}, policy.Conservative())
	if err == nil {
		t.Fatal("expected error for duplicate provider id")
	}
}

func TestClient_Providers_ReturnsConfiguredOrder(t *testing.T) {
	c, err := New([]provider.Config{
		provider.New("a", "http://a.example"),
		provider.New("b", "http://b.example"),
	}, policy.Conservative())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := c.Providers()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}
