package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghostwallet/hunter/internal/bootstrap"
	"github.com/redis/go-redis/v9"
)

// openArchiveDB connects to the report archive regardless of the DB_ENABLED
// flag; admin commands that touch the archive want the connection explicitly.
func openArchiveDB(cmdCtx *commandContext) (*sql.DB, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}

// openCacheRedis connects to the chain cache for cache maintenance commands.
//
//nolint:ireturn // returning redis.UniversalClient matches the cache repo's client dependency.
func openCacheRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	if cmdCtx.Config.Cache.RedisAddr == "" {
		return nil, errors.New("cache address not configured, set CACHE_REDIS_ADDR")
	}
	client, err := bootstrap.ConnectRedis(cmdCtx.Config.Cache, cmdCtx.Logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
