package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// ErrJobNotFound is returned when a report job id is unknown.
var ErrJobNotFound = errors.New("report job not found")

// ReportJobRepository owns report job lifecycle records.
//
// MarkComplete and MarkFailed are guarded on status = 'Running' so a job
// makes exactly one terminal transition; a second terminal update is a no-op
// reported as an error.
type ReportJobRepository interface {
	Create(ctx context.Context, job *domain.ReportJob) error
	Get(ctx context.Context, reportID string) (*domain.ReportJob, error)
	MarkComplete(ctx context.Context, reportID string, filePath string, completedAt time.Time) error
	MarkFailed(ctx context.Context, reportID string, completedAt time.Time) error
}

// PostgresReportJobRepository stores jobs in report_jobs.
type PostgresReportJobRepository struct {
	db *sql.DB
}

func NewPostgresReportJobRepository(db *sql.DB) *PostgresReportJobRepository {
	return &PostgresReportJobRepository{db: db}
}

var _ ReportJobRepository = (*PostgresReportJobRepository)(nil)

func (r *PostgresReportJobRepository) Create(ctx context.Context, job *domain.ReportJob) error {
	query := `
		INSERT INTO report_jobs (report_id, status, created_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, job.ReportID, string(job.Status), job.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert report job: %w", err)
	}

	return nil
}

func (r *PostgresReportJobRepository) Get(ctx context.Context, reportID string) (*domain.ReportJob, error) {
	query := `
		SELECT report_id, status, created_at, completed_at, file_path
		FROM report_jobs
		WHERE report_id = $1
	`

	var job domain.ReportJob
	var status string
	var completedAt sql.NullTime
	var filePath sql.NullString

	err := r.db.QueryRowContext(ctx, query, reportID).Scan(
		&job.ReportID,
		&status,
		&job.CreatedAt,
		&completedAt,
		&filePath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report job: %w", err)
	}

	job.Status = domain.JobStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	if filePath.Valid {
		p := filePath.String
		job.FilePath = &p
	}

	return &job, nil
}

func (r *PostgresReportJobRepository) MarkComplete(ctx context.Context, reportID string, filePath string, completedAt time.Time) error {
	query := `
		UPDATE report_jobs
		SET status = $2, completed_at = $3, file_path = $4
		WHERE report_id = $1 AND status = $5
	`

	res, err := r.db.ExecContext(ctx, query, reportID, string(domain.JobComplete), completedAt, filePath, string(domain.JobRunning))
	if err != nil {
		return fmt.Errorf("failed to mark report job complete: %w", err)
	}

	return requireOneRow(res, reportID)
}

func (r *PostgresReportJobRepository) MarkFailed(ctx context.Context, reportID string, completedAt time.Time) error {
	query := `
		UPDATE report_jobs
		SET status = $2, completed_at = $3
		WHERE report_id = $1 AND status = $4
	`

	res, err := r.db.ExecContext(ctx, query, reportID, string(domain.JobFailed), completedAt, string(domain.JobRunning))
	if err != nil {
		return fmt.Errorf("failed to mark report job failed: %w", err)
	}

	return requireOneRow(res, reportID)
}

func requireOneRow(res sql.Result, reportID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("report job %s is not running or does not exist", reportID)
	}
	return nil
}
