package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ghostwallet/hunter/internal/core"
	"github.com/ghostwallet/hunter/internal/data/pgxutil"
	"github.com/ghostwallet/hunter/internal/domain/model"
	apperrors "github.com/ghostwallet/hunter/internal/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReportArchiveRepo provides database operations for the batch report archive.
type ReportArchiveRepo struct {
	DB *sql.DB
}

var _ core.ReportArchive = (*ReportArchiveRepo)(nil)

// NewReportArchiveRepo creates a new ReportArchiveRepo instance with the given database connection.
func NewReportArchiveRepo(db *sql.DB) *ReportArchiveRepo {
	return &ReportArchiveRepo{DB: db}
}

// batchReportColumns defines the column list for batch_reports SELECT queries to ensure consistent field mapping.
const batchReportColumns = `id, created_at, total_jobs, queued, active, completed, failed, processing_rate, elapsed_seconds, success_rate`

// reportJobColumns defines the column list for batch_report_jobs SELECT queries.
const reportJobColumns = `job_id, target, kind, priority, status, retry_count, processing_ms, last_error`

// defaultListLimit bounds ListReports when the caller passes a non-positive limit.
const defaultListLimit = 50

// batchReportRow mirrors the flattened batch_reports schema. The status
// snapshot is stored as individual columns so reports can be queried and
// aggregated in SQL without unpacking JSON.
type batchReportRow struct {
	ID             string    `db:"id"`
	CreatedAt      time.Time `db:"created_at"`
	TotalJobs      int       `db:"total_jobs"`
	Queued         int       `db:"queued"`
	Active         int       `db:"active"`
	Completed      int       `db:"completed"`
	Failed         int       `db:"failed"`
	ProcessingRate float64   `db:"processing_rate"`
	ElapsedSeconds float64   `db:"elapsed_seconds"`
	SuccessRate    float64   `db:"success_rate"`
}

func (row batchReportRow) toModel() *model.BatchReport {
	return &model.BatchReport{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Status: model.StatusReport{
			TotalJobs:      row.TotalJobs,
			Queued:         row.Queued,
			Active:         row.Active,
			Completed:      row.Completed,
			Failed:         row.Failed,
			ProcessingRate: row.ProcessingRate,
			ElapsedSeconds: row.ElapsedSeconds,
			SuccessRate:    row.SuccessRate,
		},
	}
}

// SaveReport stores a report header and all of its job rows in a single transaction.
func (r *ReportArchiveRepo) SaveReport(ctx context.Context, report *model.BatchReport) error {
	if report == nil {
		return apperrors.Validation("report is required")
	}
	if _, err := uuid.Parse(report.ID); err != nil {
		return apperrors.ValidationField("id", "report id must be a valid UUID")
	}

	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Opts: &sql.TxOptions{
			Isolation: sql.LevelReadCommitted,
			ReadOnly:  false,
		},
		Fn: func(tx pgx.Tx) error {
			if _, execErr := tx.Exec(ctx, `
				INSERT INTO batch_reports (`+batchReportColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				report.ID, report.CreatedAt,
				report.Status.TotalJobs, report.Status.Queued, report.Status.Active,
				report.Status.Completed, report.Status.Failed,
				report.Status.ProcessingRate, report.Status.ElapsedSeconds, report.Status.SuccessRate,
			); execErr != nil {
				return execErr
			}

			return insertReportJobs(ctx, tx, report.ID, report.Jobs)
		},
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// insertReportJobs queues one insert per job row and sends them as a pgx batch.
// The ordinal column preserves the slice order for later reads.
func insertReportJobs(ctx context.Context, tx pgx.Tx, reportID string, jobs []model.ReportJob) error {
	if len(jobs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, job := range jobs {
		batch.Queue(`
			INSERT INTO batch_report_jobs (report_id, ordinal, `+reportJobColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			reportID, i, job.JobID, job.Target, job.Kind, job.Priority,
			job.Status, job.RetryCount, job.ProcessingMS, job.LastError,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range jobs {
		if _, err := br.Exec(); err != nil {
			if cerr := br.Close(); cerr != nil {
				_ = cerr
			}
			return fmt.Errorf("insert report job %d: %w", i, err)
		}
	}
	if cerr := br.Close(); cerr != nil {
		return fmt.Errorf("batch close: %w", cerr)
	}
	return nil
}

// GetReport loads a report header together with its job rows in submission order.
func (r *ReportArchiveRepo) GetReport(ctx context.Context, id string) (*model.BatchReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFound("Report not found")
	}

	var report *model.BatchReport
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, `
			SELECT `+batchReportColumns+`
			FROM batch_reports
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[batchReportRow])
		if err != nil {
			return err
		}
		report = header.toModel()

		jobRows, err := pgxConn.Query(ctx, `
			SELECT `+reportJobColumns+`
			FROM batch_report_jobs
			WHERE report_id = $1
			ORDER BY ordinal`, id)
		if err != nil {
			return err
		}
		defer jobRows.Close()

		report.Jobs, err = pgx.CollectRows(jobRows, pgx.RowToStructByName[model.ReportJob])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	return report, nil
}

// ListReports returns the most recent report headers, newest first. Job rows
// are not loaded; callers needing them should fetch individual reports.
func (r *ReportArchiveRepo) ListReports(ctx context.Context, limit int) ([]*model.BatchReport, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var reports []*model.BatchReport
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, `
			SELECT `+batchReportColumns+`
			FROM batch_reports
			ORDER BY created_at DESC, id
			LIMIT $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[batchReportRow])
		if err != nil {
			return err
		}

		reports = make([]*model.BatchReport, 0, len(headers))
		for _, header := range headers {
			reports = append(reports, header.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	return reports, nil
}
