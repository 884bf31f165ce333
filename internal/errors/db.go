package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Regular expressions for parsing PgError.Detail messages.
var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reReferencedFrom detects parent deletion: "... is still referenced from table ...".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// MapDBError maps database errors to AppError instances.
// It handles common database error patterns including:
// - pgx.ErrNoRows → NotFound
// - Unique constraint violations → Conflict
// - Foreign key violations → ForeignKey
// - Check constraint violations → Validation
// - NOT NULL violations → Validation
// - Context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Archive query timed out.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Archive query was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Record not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	// Return original error if not a recognized database error
	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return mapValidationViolation(pgErr)
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations to Conflict errors.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	var field string

	// Prefer ColumnName metadata when available (most reliable)
	if pgErr.ColumnName != "" {
		field = pgErr.ColumnName
	}

	// Fallback: parse Detail for "Key (field)=(value) already exists."
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}

	// Last resort: infer from constraint name (e.g., "batch_reports_pkey" → "id")
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	return &AppError{
		Code:    ErrCodeConflict,
		Message: "This record already exists.",
		Field:   field,
		Cause:   pgErr,
	}
}

// mapForeignKeyViolation maps foreign key constraint violations to ForeignKey errors.
func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	var message string

	// Distinguish deleting a referenced parent from inserting a child
	// with a missing parent based on the Detail text.
	if pgErr.Detail != "" {
		if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			message = "Cannot delete because this record is referenced by " + mapTableToDomain(m[1]) + "."
		} else if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			message = "Cannot save because the referenced " + mapTableToDomain(m[1]) + " does not exist."
		}
	}

	if message == "" && pgErr.TableName != "" {
		message = "Cannot complete operation because this record is referenced by " + mapTableToDomain(pgErr.TableName) + "."
	}

	if message == "" {
		message = "Cannot complete operation because this record is in use."
	}

	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: message,
		Cause:   pgErr,
	}
}

// mapValidationViolation maps CHECK and NOT NULL constraint violations to Validation errors.
func mapValidationViolation(pgErr *pgconn.PgError) error {
	message := "Invalid data. Please check the record."
	if pgErr.Code == pgerrcode.NotNullViolation {
		message = "Required field is missing."
	}

	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   pgErr.ColumnName,
		Cause:   pgErr,
	}
}

// inferFieldFromConstraint attempts to infer the field name from a constraint name.
// e.g., "batch_report_jobs_job_id_key" is too long to infer safely, but
// "batch_reports_pkey" and three-segment names like "reports_id_key" work.
func inferFieldFromConstraint(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	if strings.HasSuffix(constraintName, "_pkey") {
		return "id"
	}

	parts := strings.Split(constraintName, "_")
	// Only "table_field_key" style names are unambiguous.
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// mapTableToDomain maps archive table names to user-facing record names.
func mapTableToDomain(tableName string) string {
	tableName = strings.ToLower(strings.TrimSpace(tableName))

	domainMap := map[string]string{
		"batch_reports":     "Batch Report",
		"batch_report_jobs": "Report Job",
	}
	if domainName, ok := domainMap[tableName]; ok {
		return domainName
	}

	// Fallback: capitalize each word of the table name.
	return capitalizeWords(strings.ReplaceAll(tableName, "_", " "))
}

// capitalizeWords capitalizes the first letter of each word in a string.
func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if len(word) > 0 && word[0] >= 'a' && word[0] <= 'z' {
			words[i] = string(word[0]-32) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
