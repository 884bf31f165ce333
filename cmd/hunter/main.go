package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghostwallet/hunter/config"
	"github.com/ghostwallet/hunter/internal/bootstrap"
	"github.com/redis/go-redis/v9"
)

const archiveTimeout = 10 * time.Second

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(os.Getenv("DEV") == "true")
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	// Log startup info
	logStartupInfo(ctx, logger, &cfg)

	if len(cfg.Hunt.Targets) == 0 {
		return errors.New("no wallet targets configured, set WALLET_TARGETS")
	}

	// Initialize infrastructure
	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	// Run migrations if enabled
	if db != nil {
		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				return err
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	if sink := services.Observability.MetricsSink; sink != nil {
		defer func() {
			if cerr := sink.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
			}
		}()
	}

	return runBatch(ctx, &cfg, services, logger)
}

// runBatch submits the configured roster, drains it, and persists the report.
func runBatch(
	ctx context.Context,
	cfg *config.AppConfig,
	services *bootstrap.ServiceContainer,
	logger *slog.Logger,
) error {
	submitted, err := bootstrap.SubmitRoster(services.Engine, cfg.Hunt, logger)
	if err != nil {
		return fmt.Errorf("submit roster: %w", err)
	}
	logger.InfoContext(ctx, "roster submitted",
		"jobs", submitted,
		"targets", len(cfg.Hunt.Targets),
		"analyses", len(cfg.Hunt.Analyses),
	)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := services.Engine.Run(runCtx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("batch run: %w", runErr)
	}
	if runErr != nil {
		logger.WarnContext(ctx, "batch interrupted, unstarted jobs left queued")
	}

	status := services.Engine.Status()
	logger.InfoContext(ctx, "batch finished",
		"total_jobs", status.TotalJobs,
		"completed", status.Completed,
		"failed", status.Failed,
		"queued", status.Queued,
		"success_rate", status.SuccessRate,
		"processing_rate", status.ProcessingRate,
		"elapsed_seconds", status.ElapsedSeconds,
	)

	if services.Archive == nil {
		logger.InfoContext(ctx, "report archiving disabled, skipping persistence")
		return nil
	}

	// Persist even after an interrupt, on a context that survives the signal.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	report := services.Engine.Report()
	if err := services.Archive.SaveReport(saveCtx, report); err != nil {
		return fmt.Errorf("archive report: %w", err)
	}
	logger.InfoContext(ctx, "batch report archived", "report_id", report.ID, "jobs", len(report.Jobs))

	return nil
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting hunter batch",
		"targets", len(cfg.Hunt.Targets),
		"analyses", cfg.Hunt.Analyses,
		"max_concurrent", cfg.Engine.MaxConcurrent,
		"rate_limit_interval", cfg.Engine.RateLimitInterval,
		"max_retries", cfg.Engine.MaxRetries,
		"archive_enabled", cfg.Postgres.Enabled,
		"cache_enabled", cfg.Cache.Enabled)
}

// initInfrastructure connects the optional report archive and chain cache.
// Either may be disabled, in which case its handle comes back nil.
//
//nolint:ireturn // returning redis.UniversalClient matches the cache repo's client dependency.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	var db *sql.DB
	if cfg.Postgres.Enabled {
		conn, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
			DBConfig: cfg.Postgres,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		db = conn
	}

	var redisClient redis.UniversalClient
	if cfg.Cache.Enabled {
		client, err := bootstrap.ConnectRedis(cfg.Cache, logger)
		if err != nil {
			if db != nil {
				if cerr := db.Close(); cerr != nil {
					logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
					return nil, nil, fmt.Errorf("connect redis: %w", errors.Join(err, fmt.Errorf("close database: %w", cerr)))
				}
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
	}

	return db, redisClient, nil
}
