package main

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/ghostwallet/hunter/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestPrintStatusSummaryShowsFailureBanner(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w

	err = printStatusSummary(model.StatusReport{
		TotalJobs:      8,
		Completed:      6,
		Failed:         2,
		SuccessRate:    0.75,
		ProcessingRate: 1.5,
		ElapsedSeconds: 4.0,
	})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	outStr := string(output)
	require.Contains(t, outStr, "Status: completed with failures (2 of 8 jobs failed)")
	require.Contains(t, outStr, "Success rate: 75%")
}

func TestParseAnalyzeFlags(t *testing.T) {
	_, err := parseAnalyzeFlags([]string{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "--targets is required")

	opts, err := parseAnalyzeFlags([]string{
		"--targets", "wallet-a, wallet-b,",
		"--analyses", "risk_assessment",
		"--max-concurrent", "4",
		"--rate-limit", "250ms",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"wallet-a", "wallet-b"}, opts.Targets)
	require.Equal(t, []string{"risk_assessment"}, opts.Analyses)
	require.Equal(t, 4, opts.MaxConcurrent)
	require.Equal(t, 250*time.Millisecond, opts.RateLimit)
}
