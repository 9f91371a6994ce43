package client

import (
	"context"

	"github.com/aponysus/hedgedrpc/provider"
	"github.com/aponysus/hedgedrpc/transport"
)

// GetLatestBlockhash races the latest-blockhash RPC across the configured
// providers and returns the winner alongside its typed response.
func (c *Client) GetLatestBlockhash(ctx context.Context, commitment Commitment) (provider.ID, BlockhashResponse, error) {
	return race(ctx, c, "getLatestBlockhash", func(ctx context.Context, h transport.Handle) (BlockhashResponse, error) {
		var resp BlockhashResponse
		params := commitmentConfig(commitment)
		err := h.Invoke(ctx, "getLatestBlockhash", params, &resp)
		return resp, err
	})
}

// GetLatestBlockhashAny is a convenience projection over GetLatestBlockhash
// that discards the winning ProviderId.
func (c *Client) GetLatestBlockhashAny(ctx context.Context, commitment Commitment) (BlockhashResponse, error) {
	_, resp, err := c.GetLatestBlockhash(ctx, commitment)
	return resp, err
}

// GetAccount races an account lookup across the configured providers.
func (c *Client) GetAccount(ctx context.Context, pubkey string, commitment Commitment) (provider.ID, AccountResponse, error) {
	return race(ctx, c, "getAccountInfo", func(ctx context.Context, h transport.Handle) (AccountResponse, error) {
		var resp AccountResponse
		params := []any{pubkey, accountInfoConfig(commitment)}
		err := h.Invoke(ctx, "getAccountInfo", params, &resp)
		return resp, err
	})
}

// GetAccountAny is a convenience projection over GetAccount that discards
// the winning ProviderId.
func (c *Client) GetAccountAny(ctx context.Context, pubkey string, commitment Commitment) (AccountResponse, error) {
	_, resp, err := c.GetAccount(ctx, pubkey, commitment)
	return resp, err
}

// GetAccountFresh is GetAccount with a post-condition: the winning
// response's slot must be >= minSlot. A provider whose response is older
// than minSlot is treated as a failed attempt for that race, so a
// freshness violation surfaces through the same hedge.AllFailed channel
// as a transport failure (a hedge.ProviderFailure for that provider whose
// Err is a *StaleResponse), rather than through a distinct error kind. A
// minSlot of 0 falls back to the Client's policy.HedgeConfig.MinSlot.
func (c *Client) GetAccountFresh(ctx context.Context, pubkey string, commitment Commitment, minSlot uint64) (provider.ID, AccountResponse, error) {
	if minSlot == 0 {
		minSlot = c.cfg.MinSlot
	}
	return race(ctx, c, "getAccountFresh", func(ctx context.Context, h transport.Handle) (AccountResponse, error) {
		var resp AccountResponse
		params := []any{pubkey, accountInfoConfig(commitment)}
		if err := h.Invoke(ctx, "getAccountInfo", params, &resp); err != nil {
			return AccountResponse{}, err
		}
		if resp.Context.Slot < minSlot {
			return AccountResponse{}, &StaleResponse{MinSlot: minSlot, Got: resp.Context.Slot}
		}
		return resp, nil
	})
}

// GetSlot races a current-slot lookup across the configured providers.
func (c *Client) GetSlot(ctx context.Context, commitment Commitment) (provider.ID, uint64, error) {
	return race(ctx, c, "getSlot", func(ctx context.Context, h transport.Handle) (uint64, error) {
		var slot uint64
		err := h.Invoke(ctx, "getSlot", commitmentConfig(commitment), &slot)
		return slot, err
	})
}

// GetBalance races a lamport balance lookup across the configured
// providers.
func (c *Client) GetBalance(ctx context.Context, pubkey string, commitment Commitment) (provider.ID, BalanceResponse, error) {
	return race(ctx, c, "getBalance", func(ctx context.Context, h transport.Handle) (BalanceResponse, error) {
		var resp BalanceResponse
		params := []any{pubkey}
		if cfg := commitmentConfig(commitment); cfg != nil {
			params = append(params, cfg[0])
		}
		err := h.Invoke(ctx, "getBalance", params, &resp)
		return resp, err
	})
}

// GetHealth races a liveness probe across the configured providers. The
// payload carries no information beyond success or failure; callers use it
// to fold provider health into their own health reporting.
func (c *Client) GetHealth(ctx context.Context) (provider.ID, error) {
	id, _, err := race(ctx, c, "getHealth", func(ctx context.Context, h transport.Handle) (struct{}, error) {
		var result string
		err := h.Invoke(ctx, "getHealth", nil, &result)
		return struct{}{}, err
	})
	return id, err
}

func commitmentConfig(commitment Commitment) []any {
	if commitment == "" {
		return nil
	}
	return []any{map[string]any{"commitment": string(commitment)}}
}

func accountInfoConfig(commitment Commitment) map[string]any {
	cfg := map[string]any{"encoding": "base64"}
	if commitment != "" {
		cfg["commitment"] = string(commitment)
	}
	return cfg
}
