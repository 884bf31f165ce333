package data

import (
	"context"
	"testing"
	"time"

	"github.com/ghostwallet/hunter/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestRedisCacheRepo_Set_Get_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		key := "chain:activity:test:1"
		value := []byte(`[{"signature":"abc","slot":42}]`)
		ttl := 5 * time.Minute

		err := repo.Set(ctx, key, value, ttl)
		require.NoError(t, err)

		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, result)

		// Check TTL is set
		actualTTL := client.TTL(ctx, key).Val()
		assert.True(t, actualTTL > 0 && actualTTL <= ttl)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		result, err := repo.Get(ctx, "non:existent:key")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete existing key", func(t *testing.T) {
		key := "chain:snapshot:test:2"
		value := []byte("to be deleted")

		err := repo.Set(ctx, key, value, time.Minute)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, key)
		require.NoError(t, err)
		assert.True(t, deleted)

		// Verify it's gone
		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete non-existent key", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "non:existent:key")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("set without TTL keeps key", func(t *testing.T) {
		key := "chain:snapshot:test:3"

		err := repo.Set(ctx, key, []byte("persistent"), 0)
		require.NoError(t, err)

		actualTTL := client.TTL(ctx, key).Val()
		assert.Equal(t, time.Duration(-1), actualTTL)
	})
}

func TestRedisCacheRepo_EmptyKeyValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	err := repo.Set(ctx, "", []byte("value"), time.Minute)
	assert.Error(t, err)

	_, err = repo.Get(ctx, "")
	assert.Error(t, err)

	_, err = repo.Delete(ctx, "")
	assert.Error(t, err)
}

func TestRedisCacheRepo_Health(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client)

	err := repo.Health(context.Background())
	assert.NoError(t, err)
}
