package model

import "time"

// ReportJob is the archival row for one job in a finished batch.
type ReportJob struct {
	JobID        string    `json:"job_id"                db:"job_id"`
	Target       string    `json:"target"                db:"target"`
	Kind         JobKind   `json:"kind"                  db:"kind"`
	Priority     int       `json:"priority"              db:"priority"`
	Status       JobStatus `json:"status"                db:"status"`
	RetryCount   int       `json:"retry_count"           db:"retry_count"`
	ProcessingMS int64     `json:"processing_ms"         db:"processing_ms"`
	LastError    *string   `json:"last_error,omitempty"  db:"last_error"`
}

// BatchReport is the serialized record of a batch the engine hands to the
// reporting sink: the status snapshot plus one row per job ever submitted.
type BatchReport struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Status    StatusReport `json:"status"`
	Jobs      []ReportJob  `json:"jobs"`
}
