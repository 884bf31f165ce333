// Package solana implements the chain client against Solana's JSON-RPC API.
package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ghostwallet/hunter/internal/core"
	"github.com/ghostwallet/hunter/internal/domain/model"
	apperrors "github.com/ghostwallet/hunter/internal/errors"
	jmespath "github.com/jmespath-community/go-jmespath"
)

// tokenProgramID is the SPL Token program all token accounts hang off.
const tokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// tokenBalancesPath picks mint and balance pairs out of a
// getTokenAccountsByOwner response.
const tokenBalancesPath = "value[*].account.data.parsed.info.{mint: mint, amount: tokenAmount.uiAmount}"

const defaultTimeout = 10 * time.Second

// Config captures runtime configuration for the Solana RPC client.
type Config struct {
	Endpoints []string      // Required: RPC endpoints tried in order
	Timeout   time.Duration // Optional: per-request timeout
	Client    *http.Client  // Optional: override HTTP client
	Logger    *slog.Logger  // Optional: structured logger
}

// Client queries wallet state over Solana's JSON-RPC API. Endpoints are
// tried in their configured order; a request fails only when every
// endpoint has been exhausted.
type Client struct {
	endpoints []string
	client    *http.Client
	logger    *slog.Logger
}

var _ core.ChainClient = (*Client)(nil)

// NewClient constructs a Solana RPC client from config. Callers must provide
// at least one endpoint.
func NewClient(cfg Config) (*Client, error) {
	endpoints := make([]string, 0, len(cfg.Endpoints))
	for _, endpoint := range cfg.Endpoints {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			endpoints = append(endpoints, trimmed)
		}
	}
	if len(endpoints) == 0 {
		return nil, errors.New("at least one rpc endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	var logger *slog.Logger
	if cfg.Logger != nil {
		logger = cfg.Logger.With("component", "solana_client")
	}

	return &Client{
		endpoints: endpoints,
		client:    hc,
		logger:    logger,
	}, nil
}

// RecentActivity lists a wallet's most recent confirmed signatures, newest first.
func (c *Client) RecentActivity(ctx context.Context, target string, limit int) ([]model.ActivityEntry, error) {
	raw, err := c.call(ctx, "getSignaturesForAddress", []any{
		target,
		map[string]any{"limit": limit},
	})
	if err != nil {
		return nil, err
	}

	var signatures []struct {
		Signature string `json:"signature"`
		Slot      uint64 `json:"slot"`
		Err       any    `json:"err"`
		BlockTime *int64 `json:"blockTime"`
	}
	if err := json.Unmarshal(raw, &signatures); err != nil {
		return nil, fmt.Errorf("decode signature list: %w", err)
	}

	entries := make([]model.ActivityEntry, 0, len(signatures))
	for _, sig := range signatures {
		entry := model.ActivityEntry{
			Signature: sig.Signature,
			Slot:      sig.Slot,
			Failed:    sig.Err != nil,
		}
		if sig.BlockTime != nil {
			at := time.Unix(*sig.BlockTime, 0).UTC()
			entry.BlockTime = &at
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AccountSnapshot returns a wallet's lamport balance and SPL token holdings.
func (c *Client) AccountSnapshot(ctx context.Context, target string) (*model.AccountSnapshot, error) {
	raw, err := c.call(ctx, "getBalance", []any{target})
	if err != nil {
		return nil, err
	}

	var balance struct {
		Value uint64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &balance); err != nil {
		return nil, fmt.Errorf("decode balance: %w", err)
	}

	tokens, err := c.tokenBalances(ctx, target)
	if err != nil {
		return nil, err
	}

	return &model.AccountSnapshot{
		Lamports: balance.Value,
		SOL:      float64(balance.Value) / model.LamportsPerSOL,
		Tokens:   tokens,
	}, nil
}

func (c *Client) tokenBalances(ctx context.Context, target string) ([]model.TokenBalance, error) {
	raw, err := c.call(ctx, "getTokenAccountsByOwner", []any{
		target,
		map[string]any{"programId": tokenProgramID},
		map[string]any{"encoding": "jsonParsed"},
	})
	if err != nil {
		return nil, err
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode token accounts: %w", err)
	}

	picked, err := jmespath.Search(tokenBalancesPath, result)
	if err != nil {
		return nil, fmt.Errorf("extract token balances: %w", err)
	}

	rows, ok := picked.([]any)
	if !ok {
		return nil, nil
	}

	tokens := make([]model.TokenBalance, 0, len(rows))
	for _, row := range rows {
		fields, ok := row.(map[string]any)
		if !ok {
			continue
		}
		mint, _ := fields["mint"].(string)
		amount, _ := fields["amount"].(float64)
		if mint == "" {
			continue
		}
		tokens = append(tokens, model.TokenBalance{Mint: mint, Amount: amount})
	}
	return tokens, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// call posts a JSON-RPC request to each endpoint in order, returning the
// first successful result. Context cancellation stops the fallback walk.
func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("encode rpc request: %w", err)
	}

	var lastErr error
	for _, endpoint := range c.endpoints {
		result, err := c.post(ctx, endpoint, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.logger != nil {
			c.logger.DebugContext(
				ctx,
				"rpc endpoint failed, trying next",
				"endpoint", endpoint,
				"method", method,
				"error", err,
			)
		}
	}

	return nil, apperrors.Wrapf(
		lastErr,
		apperrors.ErrCodeUnavailable,
		"all %d rpc endpoints failed for %s", len(c.endpoints), method,
	)
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc request failed: %w", err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return nil, errors.Join(
				fmt.Errorf("read rpc response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return nil, fmt.Errorf("read rpc response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return nil, fmt.Errorf("close response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rpc %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var parsed rpcResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}

	return parsed.Result, nil
}
