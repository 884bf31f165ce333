package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration for the report archive.
type DBConfig struct {
	// Enabled controls whether finished batch reports are archived to Postgres.
	Enabled  bool   `env:"ENABLED"                 envDefault:"false"`
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"hunter"`
	Password string `env:"PASSWORD"                envDefault:"hunter"`
	Name     string `env:"NAME"                    envDefault:"hunter"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// CacheConfig contains chain cache configuration (Redis-based).
type CacheConfig struct {
	// Enabled controls whether chain lookups go through the Redis read-through cache.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"false"`

	// Redis connection settings for cache.
	RedisAddr     string `env:"CACHE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"CACHE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"CACHE_REDIS_DB"       envDefault:"0"`

	// ActivityTTL is the TTL for cached signature activity.
	ActivityTTL time.Duration `env:"CACHE_ACTIVITY_TTL" envDefault:"5m"`
	// SnapshotTTL is the TTL for cached account snapshots.
	SnapshotTTL time.Duration `env:"CACHE_SNAPSHOT_TTL" envDefault:"1m"`
}

// Sanitize applies guardrails to cache configuration.
func (c *CacheConfig) Sanitize() {
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	if c.RedisAddr == "" {
		c.Enabled = false
	}
	if c.ActivityTTL <= 0 {
		c.ActivityTTL = 5 * time.Minute
	}
	if c.SnapshotTTL <= 0 {
		c.SnapshotTTL = time.Minute
	}
}
