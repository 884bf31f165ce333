package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ghostwallet/hunter/internal/data"
	"github.com/ghostwallet/hunter/internal/domain/model"
	"github.com/ghostwallet/hunter/internal/util"
)

func runListReports(cmdCtx *commandContext, args []string) error {
	opts, err := parseReportsFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	db, err := openArchiveDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	reports, err := data.NewReportArchiveRepo(db).ListReports(ctx, opts.Limit)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	if len(reports) == 0 {
		return writeln(os.Stdout, "No archived reports found.")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "REPORT ID\tCREATED (UTC)\tTOTAL\tCOMPLETED\tFAILED\tSUCCESS\tELAPSED"); err != nil {
		return fmt.Errorf("write reports header row: %w", err)
	}
	for _, report := range reports {
		if err := writef(
			tw,
			"%s\t%s\t%d\t%d\t%d\t%s\t%.1fs\n",
			report.ID,
			formatTimestamp(report.CreatedAt),
			report.Status.TotalJobs,
			report.Status.Completed,
			report.Status.Failed,
			formatPercent(report.Status.SuccessRate),
			report.Status.ElapsedSeconds,
		); err != nil {
			return fmt.Errorf("write reports row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush reports table: %w", err)
	}

	return nil
}

func runShowReport(cmdCtx *commandContext, args []string) error {
	opts, err := parseReportFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	db, err := openArchiveDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	report, err := data.NewReportArchiveRepo(db).GetReport(ctx, opts.ID)
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}

	if opts.RawJSON {
		return printReportJSON(report)
	}
	return printReport(report)
}

func printReportJSON(report *model.BatchReport) error {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return writeln(os.Stdout, string(encoded))
}

// printReport renders the report header, the status banner, and the job table.
func printReport(report *model.BatchReport) error {
	if err := writef(os.Stdout, "\nBatch Report %s\n", report.ID); err != nil {
		return fmt.Errorf("print report header: %w", err)
	}
	if err := writef(os.Stdout, "Created: %s\n", formatTimestamp(report.CreatedAt)); err != nil {
		return fmt.Errorf("print report created: %w", err)
	}
	if err := printStatusSummary(report.Status); err != nil {
		return err
	}
	if len(report.Jobs) == 0 {
		return writeln(os.Stdout, "\nNo job rows recorded.")
	}
	if err := writeln(os.Stdout); err != nil {
		return fmt.Errorf("print report spacer: %w", err)
	}
	return printReportJobs(report.Jobs)
}

func printStatusSummary(status model.StatusReport) error {
	banner := "Status: completed"
	if status.Failed > 0 {
		banner = fmt.Sprintf("Status: completed with failures (%d of %d jobs failed)",
			status.Failed, status.TotalJobs)
	}
	if status.Queued > 0 || status.Active > 0 {
		banner = fmt.Sprintf("Status: interrupted (%d jobs still queued)", status.Queued+status.Active)
	}
	if err := writeln(os.Stdout, banner); err != nil {
		return fmt.Errorf("print status banner: %w", err)
	}
	if err := writef(
		os.Stdout,
		"Jobs: %d total, %d completed, %d failed\n",
		status.TotalJobs,
		status.Completed,
		status.Failed,
	); err != nil {
		return fmt.Errorf("print status counts: %w", err)
	}
	if err := writef(
		os.Stdout,
		"Success rate: %s, processing rate: %.2f jobs/s, elapsed: %.1fs\n",
		formatPercent(status.SuccessRate),
		status.ProcessingRate,
		status.ElapsedSeconds,
	); err != nil {
		return fmt.Errorf("print status rates: %w", err)
	}
	return nil
}

func printReportJobs(jobs []model.ReportJob) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "JOB ID\tTARGET\tKIND\tPRIORITY\tSTATUS\tRETRIES\tDURATION\tLAST ERROR"); err != nil {
		return fmt.Errorf("write job header row: %w", err)
	}
	for _, job := range jobs {
		if err := writef(
			tw,
			"%s\t%s\t%s\t%d\t%s\t%d\t%s\t%s\n",
			job.JobID,
			job.Target,
			job.Kind,
			job.Priority,
			job.Status,
			job.RetryCount,
			util.FormatProcessingDuration(time.Duration(job.ProcessingMS)*time.Millisecond),
			formatLastError(job.LastError),
		); err != nil {
			return fmt.Errorf("write job row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush job table: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

func formatLastError(msg *string) string {
	if msg == nil {
		return "-"
	}
	return *msg
}
