// Package core defines the ports between the wallet analysis engine and its collaborators.
package core

import (
	"context"

	"github.com/ghostwallet/hunter/internal/domain/model"
)

// This file contains collaborator interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the engine and the adapters behind it.
// Engine and handler code should depend on these interfaces, not concrete implementations.

// ChainClient defines the read-only queries the engine issues against the
// chain data source. Implementations are expected to try each configured
// endpoint in order and fail only when all are exhausted.
type ChainClient interface {
	// RecentActivity lists a wallet's most recent confirmed signatures,
	// newest first, up to limit entries.
	RecentActivity(ctx context.Context, target string, limit int) ([]model.ActivityEntry, error)

	// AccountSnapshot returns a wallet's balance state at query time.
	AccountSnapshot(ctx context.Context, target string) (*model.AccountSnapshot, error)
}

// ReportArchive defines the persistence sink finished batch reports are
// handed to. The storage format is the sink's concern, not the engine's.
type ReportArchive interface {
	SaveReport(ctx context.Context, report *model.BatchReport) error
	GetReport(ctx context.Context, id string) (*model.BatchReport, error)
	ListReports(ctx context.Context, limit int) ([]*model.BatchReport, error)
}
