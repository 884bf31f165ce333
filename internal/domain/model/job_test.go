package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobKind_Valid(t *testing.T) {
	assert.True(t, JobKindRiskAssessment.Valid())
	assert.True(t, JobKindNetworkAnalysis.Valid())
	assert.True(t, JobKindComplianceCheck.Valid())
	assert.True(t, JobKindPatternRecognition.Valid())
	assert.False(t, JobKind("unknown").Valid())
}

func TestJobKind_UnmarshalText(t *testing.T) {
	var jk JobKind
	err := jk.UnmarshalText([]byte("  Risk_Assessment "))
	require.NoError(t, err)
	assert.Equal(t, JobKindRiskAssessment, jk)

	err = jk.UnmarshalText([]byte("portfolio_review"))
	assert.Error(t, err)
}

func TestJobStatus_Valid(t *testing.T) {
	assert.True(t, JobStatusQueued.Valid())
	assert.True(t, JobStatusProcessing.Valid())
	assert.True(t, JobStatusCompleted.Valid())
	assert.True(t, JobStatusFailed.Valid())
	assert.False(t, JobStatus("paused").Valid())
}

func TestSubmitRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		req         SubmitRequest
		expectError bool
	}{
		{
			name: "valid request",
			req:  SubmitRequest{Target: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", Kind: JobKindRiskAssessment},
		},
		{
			name:        "empty target",
			req:         SubmitRequest{Kind: JobKindRiskAssessment},
			expectError: true,
		},
		{
			name:        "whitespace target",
			req:         SubmitRequest{Target: "   "},
			expectError: true,
		},
		{
			// Kind and address validity are checked at execution time, not submission.
			name: "unknown kind accepted",
			req:  SubmitRequest{Target: "not-a-wallet", Kind: JobKind("mystery")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalysisResult_Payload(t *testing.T) {
	risk := &RiskAssessment{Score: 72}
	res := &AnalysisResult{Kind: JobKindRiskAssessment, Risk: risk}
	assert.Equal(t, risk, res.Payload())

	empty := &AnalysisResult{Kind: JobKindNetworkAnalysis}
	assert.Nil(t, empty.Payload())
}

func TestAnalysisResult_JSONOmitsUnsetPayloads(t *testing.T) {
	res := &AnalysisResult{
		Kind:       JobKindComplianceCheck,
		Compliance: &ComplianceCheck{Flagged: true, MatchedRules: []string{"flagged_address"}},
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"compliance"`)
	assert.NotContains(t, string(raw), `"risk"`)
	assert.NotContains(t, string(raw), `"network"`)
	assert.NotContains(t, string(raw), `"patterns"`)
}
