package config

import "strings"

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - engine.go: Batch engine and hunt roster configuration
//   - solana.go: Solana RPC client configuration
//   - database.go: Report archive and cache configuration
//   - observability.go: Metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (debug logging, text log format).
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Engine holds the batch engine tunables.
	Engine EngineConfig `envPrefix:"ENGINE_"`

	// Hunt holds the wallet roster a batch run analyzes.
	Hunt HuntConfig

	// Solana RPC client configuration
	Solana SolanaConfig `envPrefix:"SOLANA_"`

	// Database configuration
	Postgres DBConfig `envPrefix:"DB_"`
	Cache    CacheConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Engine.Sanitize()
	c.Hunt.Sanitize()
	c.Solana.Sanitize()
	c.Cache.Sanitize()
	c.Observability.Sanitize()
}

// cleanList trims whitespace and drops empty entries from a string list.
func cleanList(values []string) []string {
	cleaned := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
