package model

import "time"

// AnalysisResult is the structured outcome of one completed job. Exactly one
// payload pointer is set, matching the job's kind.
type AnalysisResult struct {
	Kind       JobKind          `json:"kind"`
	Risk       *RiskAssessment  `json:"risk,omitempty"`
	Network    *NetworkAnalysis `json:"network,omitempty"`
	Compliance *ComplianceCheck `json:"compliance,omitempty"`
	Patterns   *PatternFindings `json:"patterns,omitempty"`
}

// Payload returns the kind-specific payload as an untyped value, or nil if the
// result carries none. Useful for callers that only render results.
func (r *AnalysisResult) Payload() any {
	switch {
	case r.Risk != nil:
		return r.Risk
	case r.Network != nil:
		return r.Network
	case r.Compliance != nil:
		return r.Compliance
	case r.Patterns != nil:
		return r.Patterns
	default:
		return nil
	}
}

// RiskAssessment scores how suspicious a wallet looks on a 0-100 scale.
// Factors name the heuristics that contributed to the score.
type RiskAssessment struct {
	Score         int      `json:"score"`
	Factors       []string `json:"factors,omitempty"`
	BalanceSOL    float64  `json:"balance_sol"`
	TokenAccounts int      `json:"token_accounts"`
	ActivityCount int      `json:"activity_count"`
	FailedTxRatio float64  `json:"failed_tx_ratio"`
}

// NetworkAnalysis profiles a wallet's observed transaction activity.
type NetworkAnalysis struct {
	SampleSize  int        `json:"sample_size"`
	FirstSeen   *time.Time `json:"first_seen,omitempty"`
	LastSeen    *time.Time `json:"last_seen,omitempty"`
	ActiveDays  float64    `json:"active_days"`
	TxPerDay    float64    `json:"tx_per_day"`
	FailedCount int        `json:"failed_count"`
}

// ComplianceCheck records whether a wallet matched any screening rule.
type ComplianceCheck struct {
	Flagged       bool     `json:"flagged"`
	MatchedRules  []string `json:"matched_rules,omitempty"`
	ListSize      int      `json:"list_size"`
	TokenExposure int      `json:"token_exposure"`
}

// PatternFindings lists timing patterns detected in a wallet's activity.
type PatternFindings struct {
	Patterns        []string `json:"patterns,omitempty"`
	BurstCount      int      `json:"burst_count"`
	CadenceScore    float64  `json:"cadence_score"`
	DormancyRevival bool     `json:"dormancy_revival"`
}
