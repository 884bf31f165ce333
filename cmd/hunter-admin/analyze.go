package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ghostwallet/hunter/internal/bootstrap"
)

type analyzeOptions struct {
	Targets       []string
	Analyses      []string
	MaxConcurrent int
	RateLimit     time.Duration
	RawJSON       bool
}

// runAnalyze drains a one-off batch for the given wallets without touching
// the report archive or the chain cache.
func runAnalyze(cmdCtx *commandContext, args []string) error {
	opts, err := parseAnalyzeFlags(args)
	if err != nil {
		return err
	}

	cfg := cmdCtx.Config
	cfg.Hunt.Targets = opts.Targets
	if len(opts.Analyses) > 0 {
		cfg.Hunt.Analyses = opts.Analyses
	}
	if opts.MaxConcurrent > 0 {
		cfg.Engine.MaxConcurrent = opts.MaxConcurrent
	}
	if opts.RateLimit >= 0 {
		cfg.Engine.RateLimitInterval = opts.RateLimit
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cfg,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	submitted, err := bootstrap.SubmitRoster(services.Engine, cfg.Hunt, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("submit roster: %w", err)
	}
	cmdCtx.Logger.Info("roster submitted", "jobs", submitted, "targets", len(cfg.Hunt.Targets))

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runErr := services.Engine.Run(ctx); runErr != nil {
		return fmt.Errorf("batch run: %w", runErr)
	}

	report := services.Engine.Report()
	if opts.RawJSON {
		return printReportJSON(report)
	}
	return printReport(report)
}

func parseAnalyzeFlags(args []string) (analyzeOptions, error) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var targets string
	var analyses string
	opts := analyzeOptions{RateLimit: -1}
	fs.StringVar(&targets, "targets", "", "Comma-separated wallet addresses to analyze (required)")
	fs.StringVar(&analyses, "analyses", "", "Comma-separated analysis kinds (defaults to the configured list)")
	fs.IntVar(&opts.MaxConcurrent, "max-concurrent", 0, "Worker count override (0 uses the configured value)")
	fs.DurationVar(&opts.RateLimit, "rate-limit", -1, "Per-worker spacing override (negative uses the configured value)")
	fs.BoolVar(&opts.RawJSON, "json", false, "Print the resulting report as JSON")

	if err := fs.Parse(args); err != nil {
		return analyzeOptions{}, err
	}

	opts.Targets = splitList(targets)
	opts.Analyses = splitList(analyses)
	if len(opts.Targets) == 0 {
		return analyzeOptions{}, errors.New("--targets is required")
	}

	return opts, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
