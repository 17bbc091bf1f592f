package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/notify"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusCacheTTL bounds how long a terminal job status lives in the cache.
// The Postgres record stays authoritative.
const statusCacheTTL = 10 * time.Minute

// ReportGenerator computes the full fleet report.
type ReportGenerator interface {
	Generate(ctx context.Context) ([]domain.StoreMetrics, error)
}

// ArtifactSaver persists a finished report and returns its location.
type ArtifactSaver interface {
	Save(reportID string, rows []domain.StoreMetrics) (string, error)
}

// PollResult is the answer to a status poll. FilePath is set only for
// Complete.
type PollResult struct {
	Status   domain.JobStatus `json:"status"`
	FilePath string           `json:"file_path,omitempty"`
}

// Controller owns report job lifecycle: it creates the Running record
// synchronously, runs the aggregation in a background worker, and is the only
// writer of a job's terminal state.
type Controller struct {
	repo      repository.ReportJobRepository
	generator ReportGenerator
	artifacts ArtifactSaver
	kv        KVStore
	notifier  notify.Notifier
	logger    *zap.Logger
}

func NewController(
	repo repository.ReportJobRepository,
	generator ReportGenerator,
	artifacts ArtifactSaver,
	kv KVStore,
	notifier notify.Notifier,
	logger *zap.Logger,
) *Controller {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Controller{
		repo:      repo,
		generator: generator,
		artifacts: artifacts,
		kv:        kv,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit registers a new report job and schedules its generation. It returns
// as soon as the Running record is persisted; the caller polls for the
// outcome.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	reportID := uuid.NewString()

	job := &domain.ReportJob{
		ReportID:  reportID,
		Status:    domain.JobRunning,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.repo.Create(ctx, job); err != nil {
		return "", fmt.Errorf("failed to create report job: %w", err)
	}

	c.logger.Info("Report job submitted", zap.String("report_id", reportID))

	// The job outlives the submitting request, so it runs under its own
	// context.
	go c.run(context.Background(), reportID)

	return reportID, nil
}

// Poll returns the current state of a job without blocking on its execution.
// Terminal states are answered from the cache when possible.
func (c *Controller) Poll(ctx context.Context, reportID string) (PollResult, error) {
	if cached, err := c.kv.Get(ctx, statusKey(reportID)); err == nil {
		var result PollResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	job, err := c.repo.Get(ctx, reportID)
	if err != nil {
		return PollResult{}, err
	}

	result := PollResult{Status: job.Status}
	if job.Status == domain.JobComplete && job.FilePath != nil {
		result.FilePath = *job.FilePath
	}

	if job.Status != domain.JobRunning {
		c.cacheStatus(ctx, reportID, result)
	}

	return result, nil
}

// run executes one report job to its single terminal transition.
func (c *Controller) run(ctx context.Context, reportID string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Report job panicked",
				zap.String("report_id", reportID),
				zap.Any("panic", r),
			)
			c.fail(ctx, reportID)
		}
	}()

	rows, err := c.generator.Generate(ctx)
	if err != nil {
		c.logger.Error("Report generation failed",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		c.fail(ctx, reportID)
		return
	}

	path, err := c.artifacts.Save(reportID, rows)
	if err != nil {
		c.logger.Error("Failed to persist report artifact",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		c.fail(ctx, reportID)
		return
	}

	completedAt := time.Now().UTC()
	if err := c.repo.MarkComplete(ctx, reportID, path, completedAt); err != nil {
		c.logger.Error("Failed to mark report job complete",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		return
	}

	result := PollResult{Status: domain.JobComplete, FilePath: path}
	c.cacheStatus(ctx, reportID, result)
	c.notifier.Notify(ctx, notify.Notification{
		ReportID: reportID,
		Status:   string(domain.JobComplete),
		FilePath: path,
	})

	c.logger.Info("Report job complete",
		zap.String("report_id", reportID),
		zap.String("file_path", path),
		zap.Int("row_count", len(rows)),
	)
}

func (c *Controller) fail(ctx context.Context, reportID string) {
	if err := c.repo.MarkFailed(ctx, reportID, time.Now().UTC()); err != nil {
		c.logger.Error("Failed to mark report job failed",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		return
	}

	c.cacheStatus(ctx, reportID, PollResult{Status: domain.JobFailed})
	c.notifier.Notify(ctx, notify.Notification{
		ReportID: reportID,
		Status:   string(domain.JobFailed),
	})
}

func (c *Controller) cacheStatus(ctx context.Context, reportID string, result PollResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, statusKey(reportID), string(data), statusCacheTTL); err != nil {
		c.logger.Debug("Failed to cache job status",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
	}
}

func statusKey(reportID string) string {
	return "report:job:" + reportID + ":status"
}

// IsNotFound reports whether a Poll error means the job id is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrJobNotFound)
}
