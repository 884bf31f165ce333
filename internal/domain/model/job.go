// Package model defines the core data types and structures used throughout the wallet analysis engine.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobKind represents the analysis operation a job performs.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobKind string

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobKindRiskAssessment scores a wallet's fraud risk from balance and activity.
	JobKindRiskAssessment JobKind = "risk_assessment"
	// JobKindNetworkAnalysis profiles a wallet's transaction activity over time.
	JobKindNetworkAnalysis JobKind = "network_analysis"
	// JobKindComplianceCheck screens a wallet against flagged-address lists.
	JobKindComplianceCheck JobKind = "compliance_check"
	// JobKindPatternRecognition detects timing patterns in a wallet's activity.
	JobKindPatternRecognition JobKind = "pattern_recognition"

	// JobStatusQueued indicates a job is waiting in the priority queue.
	JobStatusQueued JobStatus = "queued"
	// JobStatusProcessing indicates a worker currently holds the job.
	JobStatusProcessing JobStatus = "processing"
	// JobStatusCompleted indicates a job finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job exhausted its retry budget.
	JobStatusFailed JobStatus = "failed"
)

// UnmarshalText implements encoding.TextUnmarshaler for JobKind to allow env parsing.
func (k *JobKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	jk := JobKind(v)
	if jk.Valid() {
		*k = jk
		return nil
	}
	return fmt.Errorf("invalid JobKind: %q", v)
}

// ErrQueueEmpty is returned by PriorityQueue.Pop when no jobs are queued.
var ErrQueueEmpty = errors.New("queue is empty")

// Valid returns true if the JobKind is valid.
func (k JobKind) Valid() bool {
	return k == JobKindRiskAssessment || k == JobKindNetworkAnalysis ||
		k == JobKindComplianceCheck || k == JobKindPatternRecognition
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusQueued || s == JobStatusProcessing || s == JobStatusCompleted ||
		s == JobStatusFailed
}

// Job represents one unit of wallet analysis work with its scheduling metadata.
//
// A job is owned by exactly one component at a time: the queue while queued,
// the worker that dequeued it while processing, and the engine's terminal
// collections afterwards. Status only ever moves queued→processing and then
// either back to queued (retry), to completed, or to failed.
type Job struct {
	ID                 string          `json:"id"`
	Target             string          `json:"target"`
	Kind               JobKind         `json:"kind"`
	Status             JobStatus       `json:"status"`
	Priority           int             `json:"priority"`
	CreatedAt          time.Time       `json:"created_at"`
	StartedAt          *time.Time      `json:"started_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	Result             *AnalysisResult `json:"result,omitempty"`
	LastError          *string         `json:"last_error,omitempty"`
	RetryCount         int             `json:"retry_count"`
	ProcessingDuration time.Duration   `json:"processing_duration,omitempty"`
}

// SubmitRequest represents a request to enqueue a new analysis job.
type SubmitRequest struct {
	Target   string  `json:"target"`
	Kind     JobKind `json:"kind"`
	Priority int     `json:"priority"`
}

// Validate validates the SubmitRequest fields.
//
// Only the target is checked here. Malformed addresses and unknown kinds are
// accepted at submission and fail at execution time inside the worker, so the
// failure is observable on the job itself rather than thrown at the caller.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Target) == "" {
		return errors.New("target is required")
	}
	return nil
}

// StatusReport is a point-in-time snapshot of the engine's job collections
// and derived throughput figures. It is recomputed on every call, never stored.
type StatusReport struct {
	TotalJobs      int     `json:"total_jobs"`
	Queued         int     `json:"queued"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	Failed         int     `json:"failed"`
	ProcessingRate float64 `json:"processing_rate"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	SuccessRate    float64 `json:"success_rate"`
}
