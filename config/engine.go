package config

import "time"

// EngineConfig contains batch engine tunables.
type EngineConfig struct {
	// MaxConcurrent is the number of workers draining the job queue.
	MaxConcurrent int `env:"MAX_CONCURRENT" envDefault:"5"`
	// RateLimitInterval is the minimum spacing between unit-of-work executions
	// on one worker lane. Zero disables throttling.
	RateLimitInterval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"500ms"`
	// MaxRetries is the attempt budget per job before it fails terminally.
	MaxRetries int `env:"MAX_RETRIES" envDefault:"3"`
}

// Sanitize applies guardrails to engine tunables.
func (c *EngineConfig) Sanitize() {
	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = 1
	}
	if c.RateLimitInterval < 0 {
		c.RateLimitInterval = 0
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 3
	}
}

// HuntConfig describes the wallet roster a batch run analyzes.
type HuntConfig struct {
	// Targets is the comma-separated list of wallet addresses to analyze.
	Targets []string `env:"WALLET_TARGETS" envSeparator:","`
	// Flagged is an optional local denylist checked during compliance screening.
	Flagged []string `env:"WALLET_FLAGGED" envSeparator:","`
	// Analyses lists the analysis kinds submitted per target, ordered by
	// priority. Earlier entries are dequeued first.
	Analyses []string `env:"WALLET_ANALYSES" envDefault:"risk_assessment,compliance_check,network_analysis,pattern_recognition" envSeparator:","`
}

// Sanitize trims whitespace and drops empty entries from the roster lists.
func (c *HuntConfig) Sanitize() {
	c.Targets = cleanList(c.Targets)
	c.Flagged = cleanList(c.Flagged)
	c.Analyses = cleanList(c.Analyses)
}
