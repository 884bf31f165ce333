package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ghostwallet/hunter/internal/core"
	"github.com/ghostwallet/hunter/internal/domain/model"
)

// Redis key prefixes for chain lookups.
const (
	activityKeyPrefix = "chain:activity:"
	snapshotKeyPrefix = "chain:snapshot:"
)

// Default TTLs. Signature lists change slowly enough to hold for a few
// minutes; balances move faster and get a shorter window.
const (
	defaultActivityTTL = 5 * time.Minute
	defaultSnapshotTTL = time.Minute
)

// ChainCacheOptions groups dependencies for CachedChainClient.
type ChainCacheOptions struct {
	Chain       core.ChainClient     // Required: upstream chain client
	Cache       core.CacheRepository // Required: cache backend
	ActivityTTL time.Duration        // Optional: TTL for activity lists
	SnapshotTTL time.Duration        // Optional: TTL for account snapshots
	Logger      *slog.Logger         // Optional: structured logger
}

// CachedChainClient is a read-through cache in front of a ChainClient.
//
// Cache failures never fail a lookup; the client falls through to the
// upstream and logs the cache problem at debug level. Corrupt cache
// entries are dropped and refetched.
type CachedChainClient struct {
	chain       core.ChainClient
	cache       core.CacheRepository
	activityTTL time.Duration
	snapshotTTL time.Duration
	logger      *slog.Logger
}

var _ core.ChainClient = (*CachedChainClient)(nil)

// NewCachedChainClient constructs a new CachedChainClient.
func NewCachedChainClient(opts ChainCacheOptions) (*CachedChainClient, error) {
	if opts.Chain == nil {
		return nil, errors.New("ChainClient is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("CacheRepository is required")
	}

	activityTTL := opts.ActivityTTL
	if activityTTL <= 0 {
		activityTTL = defaultActivityTTL
	}
	snapshotTTL := opts.SnapshotTTL
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "chain_cache")
	}

	return &CachedChainClient{
		chain:       opts.Chain,
		cache:       opts.Cache,
		activityTTL: activityTTL,
		snapshotTTL: snapshotTTL,
		logger:      logger,
	}, nil
}

// MustNewCachedChainClient constructs a new CachedChainClient and panics on error.
func MustNewCachedChainClient(opts ChainCacheOptions) *CachedChainClient {
	c, err := NewCachedChainClient(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create CachedChainClient: %v", err))
	}
	return c
}

// RecentActivity returns the cached activity list for a wallet, falling
// through to the upstream client on a miss.
func (c *CachedChainClient) RecentActivity(ctx context.Context, target string, limit int) ([]model.ActivityEntry, error) {
	key := activityKeyPrefix + target + ":" + strconv.Itoa(limit)

	if raw := c.lookup(ctx, key); raw != nil {
		var entries []model.ActivityEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
		c.evictCorrupt(ctx, key)
	}

	entries, err := c.chain.RecentActivity(ctx, target, limit)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, entries, c.activityTTL)
	return entries, nil
}

// AccountSnapshot returns the cached balance state for a wallet, falling
// through to the upstream client on a miss.
func (c *CachedChainClient) AccountSnapshot(ctx context.Context, target string) (*model.AccountSnapshot, error) {
	key := snapshotKeyPrefix + target

	if raw := c.lookup(ctx, key); raw != nil {
		var snapshot model.AccountSnapshot
		if err := json.Unmarshal(raw, &snapshot); err == nil {
			return &snapshot, nil
		}
		c.evictCorrupt(ctx, key)
	}

	snapshot, err := c.chain.AccountSnapshot(ctx, target)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, snapshot, c.snapshotTTL)
	return snapshot, nil
}

// lookup reads a raw cache entry. Misses and cache errors both return nil.
func (c *CachedChainClient) lookup(ctx context.Context, key string) []byte {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if c.logger != nil {
			c.logger.DebugContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return nil
	}
	return raw
}

// store writes a cache entry. Failures are logged and ignored.
func (c *CachedChainClient) store(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		if c.logger != nil {
			c.logger.DebugContext(ctx, "cache encode failed", "key", key, "error", err)
		}
		return
	}
	if err := c.cache.Set(ctx, key, raw, ttl); err != nil {
		if c.logger != nil {
			c.logger.DebugContext(ctx, "cache write failed", "key", key, "error", err)
		}
	}
}

func (c *CachedChainClient) evictCorrupt(ctx context.Context, key string) {
	if _, err := c.cache.Delete(ctx, key); err != nil && c.logger != nil {
		c.logger.DebugContext(ctx, "cache evict failed", "key", key, "error", err)
	}
}
