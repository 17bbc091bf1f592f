package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/repository"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/uptime"

	"go.uber.org/zap"
)

// MetricsCalculator computes one report row per store.
type MetricsCalculator interface {
	StoreMetrics(ctx context.Context, storeID string, ref time.Time) (domain.StoreMetrics, error)
}

// Generator produces the full-fleet report. Stores are independent, so they
// are fanned out over a fixed pool of workers; a store with an unresolvable
// timezone is logged and skipped, any other failure aborts the report.
type Generator struct {
	observations repository.ObservationRepository
	calculator   MetricsCalculator
	workers      int
	logger       *zap.Logger
}

func NewGenerator(
	observations repository.ObservationRepository,
	calculator MetricsCalculator,
	workers int,
	logger *zap.Logger,
) *Generator {
	if workers <= 0 {
		workers = 1
	}
	return &Generator{
		observations: observations,
		calculator:   calculator,
		workers:      workers,
		logger:       logger,
	}
}

// Generate computes metrics for every store in the observation set, relative
// to the maximum observed timestamp. The reference is frozen once per report
// so the result is reproducible against a fixed dataset snapshot.
func (g *Generator) Generate(ctx context.Context) ([]domain.StoreMetrics, error) {
	ref, err := g.observations.MaxTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine reference instant: %w", err)
	}

	storeIDs, err := g.observations.StoreIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	g.logger.Info("Generating report",
		zap.Time("reference", ref),
		zap.Int("store_count", len(storeIDs)),
		zap.Int("workers", g.workers),
	)

	ids := make(chan string, len(storeIDs))
	for _, storeID := range storeIDs {
		ids <- storeID
	}
	close(ids)

	results := make(chan domain.StoreMetrics, len(storeIDs))
	errCh := make(chan error, g.workers)

	var wg sync.WaitGroup
	for i := 0; i < g.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for storeID := range ids {
				if ctx.Err() != nil {
					return
				}
				metrics, err := g.calculator.StoreMetrics(ctx, storeID, ref)
				if err != nil {
					if errors.Is(err, uptime.ErrUnknownTimezone) {
						g.logger.Warn("Skipping store with unknown timezone",
							zap.String("store_id", storeID),
							zap.Error(err),
						)
						continue
					}
					errCh <- err
					return
				}
				results <- metrics
			}
		}()
	}

	wg.Wait()
	close(results)
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("failed to compute store metrics: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([]domain.StoreMetrics, 0, len(storeIDs))
	for metrics := range results {
		rows = append(rows, metrics)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StoreID < rows[j].StoreID
	})

	g.logger.Info("Report generated",
		zap.Int("row_count", len(rows)),
		zap.Int("skipped", len(storeIDs)-len(rows)),
	)

	return rows, nil
}
