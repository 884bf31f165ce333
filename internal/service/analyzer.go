package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ghostwallet/hunter/internal/core"
	"github.com/ghostwallet/hunter/internal/domain/model"
	"github.com/ghostwallet/hunter/internal/domain/wallet"
	apperrors "github.com/ghostwallet/hunter/internal/errors"
)

// defaultActivityLimit caps how many recent signatures a handler pulls per wallet.
const defaultActivityLimit = 100

// AnalyzerOptions groups dependencies for Analyzer.
type AnalyzerOptions struct {
	Chain         core.ChainClient // Required: chain data source
	Flagged       []string         // Optional: flagged-address screening list
	ActivityLimit int              // Optional: max signatures fetched per wallet
	Logger        *slog.Logger     // Optional: structured logger
}

// Analyzer implements the per-kind wallet analysis handlers.
//
// Each handler fetches what it needs from the chain client, runs the pure
// scoring logic from the wallet package, and returns a result tagged with
// its kind. Handlers are safe for concurrent use by engine workers; the
// analyzer holds no mutable state.
type Analyzer struct {
	chain         core.ChainClient
	flagged       []string
	activityLimit int
	logger        *slog.Logger
}

// NewAnalyzer constructs a new Analyzer.
func NewAnalyzer(opts AnalyzerOptions) (*Analyzer, error) {
	if opts.Chain == nil {
		return nil, errors.New("ChainClient is required")
	}

	limit := opts.ActivityLimit
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "analyzer")
	}

	return &Analyzer{
		chain:         opts.Chain,
		flagged:       opts.Flagged,
		activityLimit: limit,
		logger:        logger,
	}, nil
}

// MustNewAnalyzer constructs a new Analyzer and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewAnalyzer(opts AnalyzerOptions) *Analyzer {
	a, err := NewAnalyzer(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create Analyzer: %v", err))
	}
	return a
}

// Handlers returns the kind-to-handler map the engine dispatches on.
func (a *Analyzer) Handlers() map[model.JobKind]HandlerFunc {
	return map[model.JobKind]HandlerFunc{
		model.JobKindRiskAssessment:     a.RiskAssessment,
		model.JobKindNetworkAnalysis:    a.NetworkAnalysis,
		model.JobKindComplianceCheck:    a.ComplianceCheck,
		model.JobKindPatternRecognition: a.PatternRecognition,
	}
}

// RiskAssessment scores a wallet's fraud risk from its balance state and recent activity.
func (a *Analyzer) RiskAssessment(ctx context.Context, job *model.Job) (*model.AnalysisResult, error) {
	if err := wallet.ValidateAddress(job.Target); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid wallet address")
	}

	snapshot, err := a.chain.AccountSnapshot(ctx, job.Target)
	if err != nil {
		return nil, fmt.Errorf("fetch account snapshot: %w", err)
	}

	activity, err := a.chain.RecentActivity(ctx, job.Target, a.activityLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent activity: %w", err)
	}

	return &model.AnalysisResult{
		Kind: model.JobKindRiskAssessment,
		Risk: wallet.ScoreRisk(snapshot, activity),
	}, nil
}

// NetworkAnalysis profiles a wallet's transaction cadence over its recent history.
func (a *Analyzer) NetworkAnalysis(ctx context.Context, job *model.Job) (*model.AnalysisResult, error) {
	if err := wallet.ValidateAddress(job.Target); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid wallet address")
	}

	activity, err := a.chain.RecentActivity(ctx, job.Target, a.activityLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent activity: %w", err)
	}

	return &model.AnalysisResult{
		Kind:    model.JobKindNetworkAnalysis,
		Network: wallet.Profile(activity),
	}, nil
}

// ComplianceCheck screens a wallet against the flagged-address list and
// reports supporting token exposure signals.
func (a *Analyzer) ComplianceCheck(ctx context.Context, job *model.Job) (*model.AnalysisResult, error) {
	if err := wallet.ValidateAddress(job.Target); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid wallet address")
	}

	snapshot, err := a.chain.AccountSnapshot(ctx, job.Target)
	if err != nil {
		return nil, fmt.Errorf("fetch account snapshot: %w", err)
	}

	check := wallet.Screen(job.Target, a.flagged, snapshot)
	if check.Flagged && a.logger != nil {
		a.logger.WarnContext(
			ctx,
			"wallet flagged by screening",
			"target", job.Target,
			"matched_rules", check.MatchedRules,
		)
	}

	return &model.AnalysisResult{
		Kind:       model.JobKindComplianceCheck,
		Compliance: check,
	}, nil
}

// PatternRecognition detects timing patterns in a wallet's recent activity.
func (a *Analyzer) PatternRecognition(ctx context.Context, job *model.Job) (*model.AnalysisResult, error) {
	if err := wallet.ValidateAddress(job.Target); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid wallet address")
	}

	activity, err := a.chain.RecentActivity(ctx, job.Target, a.activityLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent activity: %w", err)
	}

	return &model.AnalysisResult{
		Kind:     model.JobKindPatternRecognition,
		Patterns: wallet.DetectPatterns(activity),
	}, nil
}
