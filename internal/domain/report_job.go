package domain

import "time"

// JobStatus is the lifecycle state of a report job.
// Running is the only non-terminal state; a job transitions exactly once to
// Complete or Failed and never reverts.
type JobStatus string

const (
	JobRunning  JobStatus = "Running"
	JobComplete JobStatus = "Complete"
	JobFailed   JobStatus = "Failed"
)

// ReportJob is one report generation job (report_jobs table).
// FilePath is set together with the Complete status, never on its own.
type ReportJob struct {
	ReportID    string
	Status      JobStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
	FilePath    *string
}
