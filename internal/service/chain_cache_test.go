package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ghostwallet/hunter/internal/domain/model"
	"github.com/ghostwallet/hunter/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewCachedChainClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success with default TTLs", func(t *testing.T) {
		c, err := NewCachedChainClient(ChainCacheOptions{
			Chain: mocks.NewMockChainClient(ctrl),
			Cache: mocks.NewMockCacheRepository(ctrl),
		})
		require.NoError(t, err)
		assert.Equal(t, defaultActivityTTL, c.activityTTL)
		assert.Equal(t, defaultSnapshotTTL, c.snapshotTTL)
	})

	t.Run("missing chain client", func(t *testing.T) {
		_, err := NewCachedChainClient(ChainCacheOptions{
			Cache: mocks.NewMockCacheRepository(ctrl),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ChainClient is required")
	})

	t.Run("missing cache", func(t *testing.T) {
		_, err := NewCachedChainClient(ChainCacheOptions{
			Chain: mocks.NewMockChainClient(ctrl),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CacheRepository is required")
	})
}

func TestCachedChainClient_RecentActivity(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	entries := []model.ActivityEntry{
		{Signature: "sig-1", Slot: 101, BlockTime: &at},
		{Signature: "sig-2", Slot: 102, Failed: true},
	}
	key := activityKeyPrefix + testWallet + ":7"

	t.Run("miss fills cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), defaultActivityTTL).Return(nil)

		chain := mocks.NewMockChainClient(ctrl)
		chain.EXPECT().RecentActivity(gomock.Any(), testWallet, 7).Return(entries, nil)

		c := MustNewCachedChainClient(ChainCacheOptions{Chain: chain, Cache: cache})
		got, err := c.RecentActivity(ctx, testWallet, 7)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("hit skips upstream", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		raw, err := json.Marshal(entries)
		require.NoError(t, err)

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return(raw, nil)

		c := MustNewCachedChainClient(ChainCacheOptions{
			Chain: mocks.NewMockChainClient(ctrl),
			Cache: cache,
		})
		got, err := c.RecentActivity(ctx, testWallet, 7)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("cache read error falls through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, errors.New("connection refused"))
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), defaultActivityTTL).Return(nil)

		chain := mocks.NewMockChainClient(ctrl)
		chain.EXPECT().RecentActivity(gomock.Any(), testWallet, 7).Return(entries, nil)

		c := MustNewCachedChainClient(ChainCacheOptions{Chain: chain, Cache: cache})
		got, err := c.RecentActivity(ctx, testWallet, 7)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("corrupt entry is evicted and refetched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return([]byte("{not json"), nil)
		cache.EXPECT().Delete(gomock.Any(), key).Return(true, nil)
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), defaultActivityTTL).Return(nil)

		chain := mocks.NewMockChainClient(ctrl)
		chain.EXPECT().RecentActivity(gomock.Any(), testWallet, 7).Return(entries, nil)

		c := MustNewCachedChainClient(ChainCacheOptions{Chain: chain, Cache: cache})
		got, err := c.RecentActivity(ctx, testWallet, 7)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("upstream error propagates without a cache write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)

		chain := mocks.NewMockChainClient(ctrl)
		chain.EXPECT().RecentActivity(gomock.Any(), testWallet, 7).Return(nil, errors.New("rpc down"))

		c := MustNewCachedChainClient(ChainCacheOptions{Chain: chain, Cache: cache})
		_, err := c.RecentActivity(ctx, testWallet, 7)

		require.Error(t, err)
	})
}

func TestCachedChainClient_AccountSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshot := &model.AccountSnapshot{
		Lamports: 2_500_000_000,
		SOL:      2.5,
		Tokens:   []model.TokenBalance{{Mint: "mint-1", Amount: 12.5}},
	}
	key := snapshotKeyPrefix + testWallet

	t.Run("miss fills cache with snapshot TTL", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), defaultSnapshotTTL).Return(nil)

		chain := mocks.NewMockChainClient(ctrl)
		chain.EXPECT().AccountSnapshot(gomock.Any(), testWallet).Return(snapshot, nil)

		c := MustNewCachedChainClient(ChainCacheOptions{Chain: chain, Cache: cache})
		got, err := c.AccountSnapshot(ctx, testWallet)

		require.NoError(t, err)
		assert.Equal(t, snapshot, got)
	})

	t.Run("hit skips upstream", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		raw, err := json.Marshal(snapshot)
		require.NoError(t, err)

		cache := mocks.NewMockCacheRepository(ctrl)
		cache.EXPECT().Get(gomock.Any(), key).Return(raw, nil)

		c := MustNewCachedChainClient(ChainCacheOptions{
			Chain: mocks.NewMockChainClient(ctrl),
			Cache: cache,
		})
		got, err := c.AccountSnapshot(ctx, testWallet)

		require.NoError(t, err)
		assert.Equal(t, snapshot, got)
	})
}
