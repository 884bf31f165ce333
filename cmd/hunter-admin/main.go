package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/ghostwallet/hunter/config"
	"github.com/ghostwallet/hunter/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger(os.Getenv("DEV") == "true")

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run report archive database migrations",
			run:         runMigrations,
		},
		"reports": {
			name:        "reports",
			description: "List archived batch reports",
			run:         runListReports,
		},
		"report": {
			name:        "report",
			description: "Show one archived batch report with its job rows",
			run:         runShowReport,
		},
		"analyze": {
			name:        "analyze",
			description: "Run a one-off analysis batch against the given wallets",
			run:         runAnalyze,
		},
		"clear-cache": {
			name:        "clear-cache",
			description: "Clear cached chain lookups from Redis",
			run:         runClearCache,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: hunter-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := cmds[name]
		if err := writef(os.Stdout, "  %-14s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

type migrateOptions struct {
	Timeout time.Duration
}

type reportsOptions struct {
	Limit int
}

type reportOptions struct {
	ID      string
	RawJSON bool
}

type clearCacheOptions struct {
	Pattern string
	DryRun  bool
	Yes     bool
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	db, err := openArchiveDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("running database migrations")

	if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
		return fmt.Errorf("run migrations: %w", migrateErr)
	}

	cmdCtx.Logger.Info("migrations completed successfully")
	return nil
}

func runClearCache(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearCacheFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmClearCache(opts); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	redisClient, err := openCacheRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("scanning redis", "pattern", opts.Pattern, "dry_run", opts.DryRun)

	iter := redisClient.Scan(ctx, 0, opts.Pattern, 1000).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if iterErr := iter.Err(); iterErr != nil {
		return fmt.Errorf("scan redis: %w", iterErr)
	}
	if len(keys) == 0 {
		cmdCtx.Logger.Info("no cached chain keys matched", "pattern", opts.Pattern)
		return nil
	}
	if opts.DryRun {
		cmdCtx.Logger.Info("redis keys matched", "count", len(keys))
		return nil
	}

	for start := 0; start < len(keys); start += 100 {
		end := min(start+100, len(keys))
		if delErr := redisClient.Del(ctx, keys[start:end]...).Err(); delErr != nil {
			return fmt.Errorf("delete redis keys: %w", delErr)
		}
	}
	cmdCtx.Logger.Info("redis keys deleted", "count", len(keys))
	return nil
}

func confirmClearCache(opts clearCacheOptions) error {
	if opts.DryRun || opts.Yes {
		return nil
	}

	if err := writef(os.Stdout, "This will delete Redis keys matching %q.\n", opts.Pattern); err != nil {
		return fmt.Errorf("print confirmation intro: %w", err)
	}
	if err := write(os.Stdout, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		if writeErr := writef(os.Stderr, "\nFailed to read confirmation input: %v\n", err); writeErr != nil {
			return fmt.Errorf("aborted by user: report write failed: %w", writeErr)
		}
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete",
	)

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}

	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseReportsFlags(args []string) (reportsOptions, error) {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts reportsOptions
	fs.IntVar(&opts.Limit, "limit", 20, "Maximum reports to display")

	if err := fs.Parse(args); err != nil {
		return reportsOptions{}, err
	}

	if opts.Limit <= 0 {
		return reportsOptions{}, errors.New("--limit must be greater than zero")
	}

	return opts, nil
}

func parseReportFlags(args []string) (reportOptions, error) {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts reportOptions
	fs.StringVar(&opts.ID, "id", "", "Report ID to show (required)")
	fs.BoolVar(&opts.RawJSON, "json", false, "Print the report as JSON")

	if err := fs.Parse(args); err != nil {
		return reportOptions{}, err
	}

	opts.ID = strings.TrimSpace(opts.ID)
	if opts.ID == "" {
		return reportOptions{}, errors.New("--id is required")
	}

	return opts, nil
}

func parseClearCacheFlags(args []string) (clearCacheOptions, error) {
	fs := flag.NewFlagSet("clear-cache", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearCacheOptions
	fs.StringVar(&opts.Pattern, "pattern", "chain:*", "Key pattern to clear")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print matching key count without deleting")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearCacheOptions{}, err
	}

	opts.Pattern = strings.TrimSpace(opts.Pattern)
	if opts.Pattern == "" {
		return clearCacheOptions{}, errors.New("--pattern must not be empty")
	}

	return opts, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
