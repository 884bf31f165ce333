package config

import "time"

// DefaultRPCEndpoint is the public Solana mainnet RPC endpoint used when no
// endpoint list is configured.
const DefaultRPCEndpoint = "https://api.mainnet-beta.solana.com"

// SolanaConfig contains Solana JSON-RPC client configuration.
type SolanaConfig struct {
	// Endpoints lists RPC endpoints tried in order until one succeeds.
	Endpoints []string `env:"RPC_ENDPOINTS" envDefault:"https://api.mainnet-beta.solana.com" envSeparator:","`
	// Timeout bounds each RPC HTTP request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// ActivityLimit caps how many recent signatures handlers fetch per wallet.
	ActivityLimit int `env:"ACTIVITY_LIMIT" envDefault:"100"`
}

// Sanitize drops blank endpoints and restores defaults for invalid values.
func (c *SolanaConfig) Sanitize() {
	c.Endpoints = cleanList(c.Endpoints)
	if len(c.Endpoints) == 0 {
		c.Endpoints = []string{DefaultRPCEndpoint}
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.ActivityLimit < 1 {
		c.ActivityLimit = 100
	}
}
