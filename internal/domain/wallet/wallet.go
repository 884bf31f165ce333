// Package wallet holds the pure analysis logic applied to chain data:
// address validation, risk scoring, activity profiling, and timing-pattern
// detection. Nothing here performs I/O.
package wallet

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/ghostwallet/hunter/internal/domain/model"
)

// base58Alphabet is the character set of base58-encoded Solana addresses.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	minAddressLen = 32
	maxAddressLen = 44

	// burstSize transactions inside burstWindow count as one burst.
	burstSize   = 5
	burstWindow = time.Hour

	// dormancyGap is the inactivity span that makes later activity a revival.
	dormancyGap = 30 * 24 * time.Hour

	highFailureRatio  = 0.3
	largeTokenSurface = 15
	regularCadenceMin = 0.75
)

// Pattern names reported in analysis results.
const (
	PatternBurstActivity   = "burst_activity"
	PatternRegularCadence  = "regular_cadence"
	PatternDormancyRevival = "dormancy_revival"
)

// Compliance rule names reported in screening results.
const (
	RuleFlaggedAddress    = "flagged_address"
	RuleHighTokenExposure = "high_token_exposure"
)

// ValidateAddress checks that target looks like a Solana wallet address:
// base58 alphabet, 32 to 44 characters. Submission does not call this.
// Malformed targets are accepted and fail here, at execution time.
func ValidateAddress(target string) error {
	if l := len(target); l < minAddressLen || l > maxAddressLen {
		return fmt.Errorf("address length %d outside %d-%d", l, minAddressLen, maxAddressLen)
	}
	for _, c := range target {
		if !strings.ContainsRune(base58Alphabet, c) {
			return fmt.Errorf("address contains non-base58 character %q", c)
		}
	}
	return nil
}

// ScoreRisk derives a 0-100 risk score from a wallet's balance state and
// recent activity. Each triggered heuristic contributes a fixed weight and
// is named in Factors so a reviewer can see why the score is what it is.
func ScoreRisk(snapshot *model.AccountSnapshot, activity []model.ActivityEntry) *model.RiskAssessment {
	assessment := &model.RiskAssessment{
		ActivityCount: len(activity),
	}
	if snapshot != nil {
		assessment.BalanceSOL = snapshot.SOL
		assessment.TokenAccounts = len(snapshot.Tokens)
	}

	failed := 0
	for _, entry := range activity {
		if entry.Failed {
			failed++
		}
	}
	if len(activity) > 0 {
		assessment.FailedTxRatio = float64(failed) / float64(len(activity))
	}

	score := 0
	addFactor := func(weight int, name string) {
		score += weight
		assessment.Factors = append(assessment.Factors, name)
	}

	if countBursts(blockTimes(activity)) > 0 {
		addFactor(30, PatternBurstActivity)
	}
	if snapshot != nil && snapshot.Lamports == 0 && len(activity) > 0 {
		// Drained-but-active wallets are the classic ghost profile.
		addFactor(25, "zero_balance_with_activity")
	}
	if assessment.FailedTxRatio >= highFailureRatio {
		addFactor(20, "high_failure_ratio")
	}
	if assessment.TokenAccounts >= largeTokenSurface {
		addFactor(15, "large_token_surface")
	}

	assessment.Score = min(score, 100)
	return assessment
}

// Profile summarizes a wallet's observed activity over time.
func Profile(activity []model.ActivityEntry) *model.NetworkAnalysis {
	analysis := &model.NetworkAnalysis{SampleSize: len(activity)}

	for _, entry := range activity {
		if entry.Failed {
			analysis.FailedCount++
		}
	}

	times := blockTimes(activity)
	if len(times) == 0 {
		return analysis
	}

	first, last := times[0], times[len(times)-1]
	analysis.FirstSeen = &first
	analysis.LastSeen = &last

	span := last.Sub(first)
	analysis.ActiveDays = span.Hours() / 24
	if span > 0 {
		analysis.TxPerDay = float64(len(times)) / math.Max(analysis.ActiveDays, 1)
	} else {
		analysis.TxPerDay = float64(len(times))
	}
	return analysis
}

// DetectPatterns finds timing patterns in a wallet's activity: bursts of
// closely spaced transactions, unnaturally regular cadence (an automation
// marker), and dormancy followed by revival.
func DetectPatterns(activity []model.ActivityEntry) *model.PatternFindings {
	findings := &model.PatternFindings{}
	times := blockTimes(activity)

	findings.BurstCount = countBursts(times)
	if findings.BurstCount > 0 {
		findings.Patterns = append(findings.Patterns, PatternBurstActivity)
	}

	findings.CadenceScore = cadenceScore(times)
	if len(times) >= burstSize && findings.CadenceScore >= regularCadenceMin {
		findings.Patterns = append(findings.Patterns, PatternRegularCadence)
	}

	if hasDormancyRevival(times) {
		findings.DormancyRevival = true
		findings.Patterns = append(findings.Patterns, PatternDormancyRevival)
	}

	return findings
}

// Screen checks a wallet against the configured flagged-address list and its
// token exposure. Only a flagged-address hit marks the wallet as flagged;
// token exposure is reported as a supporting rule.
func Screen(target string, flagged []string, snapshot *model.AccountSnapshot) *model.ComplianceCheck {
	check := &model.ComplianceCheck{ListSize: len(flagged)}
	if snapshot != nil {
		check.TokenExposure = len(snapshot.Tokens)
	}

	if slices.Contains(flagged, target) {
		check.Flagged = true
		check.MatchedRules = append(check.MatchedRules, RuleFlaggedAddress)
	}
	if check.TokenExposure >= largeTokenSurface {
		check.MatchedRules = append(check.MatchedRules, RuleHighTokenExposure)
	}
	return check
}

// blockTimes extracts the non-nil block times from activity, sorted ascending.
func blockTimes(activity []model.ActivityEntry) []time.Time {
	times := make([]time.Time, 0, len(activity))
	for _, entry := range activity {
		if entry.BlockTime != nil {
			times = append(times, *entry.BlockTime)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// countBursts counts non-overlapping windows of burstSize transactions
// falling inside burstWindow.
func countBursts(times []time.Time) int {
	bursts := 0
	i := 0
	for i+burstSize-1 < len(times) {
		if times[i+burstSize-1].Sub(times[i]) <= burstWindow {
			bursts++
			i += burstSize
		} else {
			i++
		}
	}
	return bursts
}

// cadenceScore measures how regular the gaps between transactions are.
// 1 means perfectly even spacing, values near 0 mean erratic timing.
func cadenceScore(times []time.Time) float64 {
	if len(times) < 3 {
		return 0
	}

	gaps := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		gaps = append(gaps, times[i].Sub(times[i-1]).Seconds())
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))
	if mean <= 0 {
		return 0
	}

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	stddev := math.Sqrt(variance / float64(len(gaps)))

	// Coefficient of variation folded into (0,1]: cv 0 → 1, large cv → 0.
	return 1 / (1 + stddev/mean)
}

func hasDormancyRevival(times []time.Time) bool {
	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) >= dormancyGap {
			return true
		}
	}
	return false
}
