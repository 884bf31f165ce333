package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseEngineEnv(t *testing.T) {
	t.Setenv("ENGINE_MAX_CONCURRENT", "8")
	t.Setenv("ENGINE_RATE_LIMIT_INTERVAL", "250ms")
	t.Setenv("ENGINE_MAX_RETRIES", "5")
	t.Setenv("WALLET_TARGETS", "wallet-a,wallet-b")
	t.Setenv("WALLET_FLAGGED", "wallet-x")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expectedEngine := EngineConfig{
		MaxConcurrent:     8,
		RateLimitInterval: 250 * time.Millisecond,
		MaxRetries:        5,
	}
	if !reflect.DeepEqual(cfg.Engine, expectedEngine) {
		t.Fatalf("unexpected engine configuration:\nexpected: %#v\ngot:      %#v", expectedEngine, cfg.Engine)
	}

	expectedHunt := HuntConfig{
		Targets: []string{"wallet-a", "wallet-b"},
		Flagged: []string{"wallet-x"},
		Analyses: []string{
			"risk_assessment", "compliance_check", "network_analysis", "pattern_recognition",
		},
	}
	if !reflect.DeepEqual(cfg.Hunt, expectedHunt) {
		t.Fatalf("unexpected hunt configuration:\nexpected: %#v\ngot:      %#v", expectedHunt, cfg.Hunt)
	}
}

func TestAppConfig_ParseSolanaEnv(t *testing.T) {
	t.Setenv("SOLANA_RPC_ENDPOINTS", "https://rpc-a.example.com, https://rpc-b.example.com ,")
	t.Setenv("SOLANA_TIMEOUT", "3s")
	t.Setenv("SOLANA_ACTIVITY_LIMIT", "25")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := SolanaConfig{
		Endpoints:     []string{"https://rpc-a.example.com", "https://rpc-b.example.com"},
		Timeout:       3 * time.Second,
		ActivityLimit: 25,
	}
	if !reflect.DeepEqual(cfg.Solana, expected) {
		t.Fatalf("unexpected solana configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Solana)
	}
}

func TestEngineConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    EngineConfig
		expected EngineConfig
	}{
		{
			name:     "valid values pass through",
			input:    EngineConfig{MaxConcurrent: 4, RateLimitInterval: time.Second, MaxRetries: 2},
			expected: EngineConfig{MaxConcurrent: 4, RateLimitInterval: time.Second, MaxRetries: 2},
		},
		{
			name:     "zero concurrency raised to one",
			input:    EngineConfig{MaxConcurrent: 0, RateLimitInterval: time.Second, MaxRetries: 3},
			expected: EngineConfig{MaxConcurrent: 1, RateLimitInterval: time.Second, MaxRetries: 3},
		},
		{
			name:     "negative interval disabled",
			input:    EngineConfig{MaxConcurrent: 2, RateLimitInterval: -time.Second, MaxRetries: 3},
			expected: EngineConfig{MaxConcurrent: 2, RateLimitInterval: 0, MaxRetries: 3},
		},
		{
			name:     "zero retries restored to default",
			input:    EngineConfig{MaxConcurrent: 2, RateLimitInterval: 0, MaxRetries: 0},
			expected: EngineConfig{MaxConcurrent: 2, RateLimitInterval: 0, MaxRetries: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			cfg.Sanitize()
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, cfg)
			}
		})
	}
}

func TestSolanaConfig_Sanitize(t *testing.T) {
	cfg := SolanaConfig{
		Endpoints:     []string{"  ", ""},
		Timeout:       0,
		ActivityLimit: -1,
	}
	cfg.Sanitize()

	if len(cfg.Endpoints) != 1 || cfg.Endpoints[0] != DefaultRPCEndpoint {
		t.Errorf("expected default endpoint, got %#v", cfg.Endpoints)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.ActivityLimit != 100 {
		t.Errorf("expected default activity limit, got %d", cfg.ActivityLimit)
	}
}

func TestCacheConfig_Sanitize(t *testing.T) {
	cfg := CacheConfig{
		Enabled:     true,
		RedisAddr:   "   ",
		ActivityTTL: -time.Minute,
		SnapshotTTL: 0,
	}
	cfg.Sanitize()

	if cfg.Enabled {
		t.Error("expected cache disabled when redis address is blank")
	}
	if cfg.ActivityTTL != 5*time.Minute {
		t.Errorf("expected default activity TTL, got %v", cfg.ActivityTTL)
	}
	if cfg.SnapshotTTL != time.Minute {
		t.Errorf("expected default snapshot TTL, got %v", cfg.SnapshotTTL)
	}
}

func TestHuntConfig_Sanitize(t *testing.T) {
	cfg := HuntConfig{
		Targets:  []string{" wallet-a ", "", "wallet-b"},
		Flagged:  []string{"  "},
		Analyses: []string{"risk_assessment", " compliance_check"},
	}
	cfg.Sanitize()

	if !reflect.DeepEqual(cfg.Targets, []string{"wallet-a", "wallet-b"}) {
		t.Errorf("unexpected targets: %#v", cfg.Targets)
	}
	if len(cfg.Flagged) != 0 {
		t.Errorf("expected empty flagged list, got %#v", cfg.Flagged)
	}
	if !reflect.DeepEqual(cfg.Analyses, []string{"risk_assessment", "compliance_check"}) {
		t.Errorf("unexpected analyses: %#v", cfg.Analyses)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "  "}
	cfg.Sanitize()

	if cfg.Enabled {
		t.Error("expected metrics disabled when statsd address is blank")
	}
	if cfg.IsEnabled() {
		t.Error("IsEnabled should be false after sanitize")
	}

	cfg = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " 127.0.0.1:8125 "}
	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Error("expected metrics enabled for a configured address")
	}
	if cfg.StatsdAddress != "127.0.0.1:8125" {
		t.Errorf("expected trimmed address, got %q", cfg.StatsdAddress)
	}
}
