// Package mocks provides mock implementations for testing the hunter analysis engine.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// collaborator interfaces in internal/core. The generated files are committed so the
// tree builds without a codegen step.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockChain := mocks.NewMockChainClient(ctrl)
//	mockChain.EXPECT().AccountSnapshot(gomock.Any(), gomock.Any()).Return(snapshot, nil)
package mocks

// Generate mock for ChainClient interface from internal/core package.
// This creates MockChainClient with methods for all ChainClient interface methods:
// RecentActivity, AccountSnapshot
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=chain_client_mock.go github.com/ghostwallet/hunter/internal/core ChainClient

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Set, Get, Delete, Health
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/ghostwallet/hunter/internal/core CacheRepository

// Generate mock for ReportArchive interface from internal/core package.
// This creates MockReportArchive with methods for all ReportArchive interface methods:
// SaveReport, GetReport, ListReports
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=report_archive_mock.go github.com/ghostwallet/hunter/internal/core ReportArchive
