package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ghostwallet/hunter/config"
	"github.com/ghostwallet/hunter/internal/adapters/solana"
	"github.com/ghostwallet/hunter/internal/core"
	"github.com/ghostwallet/hunter/internal/data"
	"github.com/ghostwallet/hunter/internal/domain/model"
	"github.com/ghostwallet/hunter/internal/observability/statsd"
	"github.com/ghostwallet/hunter/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds the wired batch engine and its collaborators.
type ServiceContainer struct {
	Engine        *service.Engine
	Analyzer      *service.Analyzer
	Chain         core.ChainClient
	Archive       core.ReportArchive // nil when report archiving is disabled
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB               // Optional: nil disables report archiving
	RedisClient redis.UniversalClient // Optional: nil disables the chain cache
	Logger      *slog.Logger
}

// NewServices wires the chain client, analyzer, and batch engine from configuration.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service dependencies require a config")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(logger, deps.Config.Observability)

	chain, err := buildChainClient(deps, logger)
	if err != nil {
		return nil, err
	}

	analyzer, err := service.NewAnalyzer(service.AnalyzerOptions{
		Chain:         chain,
		Flagged:       deps.Config.Hunt.Flagged,
		ActivityLimit: deps.Config.Solana.ActivityLimit,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	engineOpts := service.EngineOptions{
		Handlers: analyzer.Handlers(),
		Config: service.EngineConfig{
			MaxConcurrent:     deps.Config.Engine.MaxConcurrent,
			RateLimitInterval: deps.Config.Engine.RateLimitInterval,
			MaxRetries:        deps.Config.Engine.MaxRetries,
		},
		Logger: logger,
	}
	if obs.MetricsSink != nil {
		engineOpts.Metrics = obs.MetricsSink
	}

	engine, err := service.NewEngine(engineOpts)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	container := &ServiceContainer{
		Engine:        engine,
		Analyzer:      analyzer,
		Chain:         chain,
		Observability: obs,
	}
	if deps.DB != nil {
		container.Archive = data.NewReportArchiveRepo(deps.DB)
	}

	return container, nil
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "hunter",
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// buildChainClient builds the Solana RPC client, wrapped in the Redis
// read-through cache when a Redis client is provided.
//
//nolint:ireturn // returning core.ChainClient lets the cache wrap the RPC client transparently.
func buildChainClient(deps *ServiceDeps, logger *slog.Logger) (core.ChainClient, error) {
	rpc, err := solana.NewClient(solana.Config{
		Endpoints: deps.Config.Solana.Endpoints,
		Timeout:   deps.Config.Solana.Timeout,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build solana client: %w", err)
	}

	if deps.RedisClient == nil {
		return rpc, nil
	}

	cached, err := service.NewCachedChainClient(service.ChainCacheOptions{
		Chain:       rpc,
		Cache:       data.NewRedisCacheRepo(deps.RedisClient),
		ActivityTTL: deps.Config.Cache.ActivityTTL,
		SnapshotTTL: deps.Config.Cache.SnapshotTTL,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build chain cache: %w", err)
	}

	return cached, nil
}

// SubmitRoster enqueues one job per (target, analysis) pair. The analysis
// list's order doubles as priority, so earlier kinds are dequeued first.
func SubmitRoster(engine *service.Engine, hunt config.HuntConfig, logger *slog.Logger) (int, error) {
	submitted := 0
	for _, target := range hunt.Targets {
		for i, analysis := range hunt.Analyses {
			var kind model.JobKind
			if err := kind.UnmarshalText([]byte(analysis)); err != nil {
				return submitted, fmt.Errorf("parse analysis kind %q: %w", analysis, err)
			}

			id, err := engine.Submit(model.SubmitRequest{
				Target:   target,
				Kind:     kind,
				Priority: i,
			})
			if err != nil {
				return submitted, fmt.Errorf("submit %s for %s: %w", kind, target, err)
			}
			submitted++

			if logger != nil {
				logger.Debug("job queued", "id", id, "target", target, "kind", kind)
			}
		}
	}

	return submitted, nil
}
