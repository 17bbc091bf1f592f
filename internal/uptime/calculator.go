package uptime

import (
	"context"
	"fmt"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/repository"

	"go.uber.org/zap"
)

// Trailing report windows, all ending at the reference instant.
const (
	WindowHour = time.Hour
	WindowDay  = 24 * time.Hour
	WindowWeek = 7 * 24 * time.Hour
)

// Calculator computes uptime/downtime metrics for a single store. It owns no
// state of its own: the result is a pure function of the repositories and the
// reference instant.
type Calculator struct {
	observations repository.ObservationRepository
	schedules    *ScheduleResolver
	timezones    *TimezoneResolver
	logger       *zap.Logger
}

func NewCalculator(
	observations repository.ObservationRepository,
	schedules *ScheduleResolver,
	timezones *TimezoneResolver,
	logger *zap.Logger,
) *Calculator {
	return &Calculator{
		observations: observations,
		schedules:    schedules,
		timezones:    timezones,
		logger:       logger,
	}
}

// StoreMetrics computes one report row for a store, for the three trailing
// windows ending at ref. Observations are fetched once for the widest window
// and narrowed in memory.
func (c *Calculator) StoreMetrics(ctx context.Context, storeID string, ref time.Time) (domain.StoreMetrics, error) {
	loc, err := c.timezones.Resolve(ctx, storeID)
	if err != nil {
		return domain.StoreMetrics{}, fmt.Errorf("store %s: %w", storeID, err)
	}

	sched, err := c.schedules.Resolve(ctx, storeID)
	if err != nil {
		return domain.StoreMetrics{}, fmt.Errorf("store %s: %w", storeID, err)
	}

	weekStart := ref.Add(-WindowWeek)
	observations, err := c.observations.Observations(ctx, storeID, weekStart, ref)
	if err != nil {
		return domain.StoreMetrics{}, fmt.Errorf("store %s: %w", storeID, err)
	}

	upHour, downHour := c.windowMetrics(observations, ref.Add(-WindowHour), ref, sched, loc)
	upDay, downDay := c.windowMetrics(observations, ref.Add(-WindowDay), ref, sched, loc)
	upWeek, downWeek := c.windowMetrics(observations, weekStart, ref, sched, loc)

	// Contract: the hour window stays in minutes, day and week are hours.
	return domain.StoreMetrics{
		StoreID:          storeID,
		UptimeLastHour:   upHour,
		UptimeLastDay:    upDay / 60,
		UptimeLastWeek:   upWeek / 60,
		DowntimeLastHour: downHour,
		DowntimeLastDay:  downDay / 60,
		DowntimeLastWeek: downWeek / 60,
	}, nil
}

// windowMetrics returns (uptimeMinutes, downtimeMinutes) for one window.
//
// With no usable observations, the whole business-hours span of the window is
// reported as downtime. Otherwise the interpolated totals are rescaled so
// they sum to the business-hours duration, compensating for the part of the
// window the samples never covered.
func (c *Calculator) windowMetrics(observations []domain.Observation, start, end time.Time, sched domain.WeeklySchedule, loc *time.Location) (float64, float64) {
	var inWindow []domain.Observation
	for _, o := range observations {
		if !o.Timestamp.Before(start) && !o.Timestamp.After(end) {
			inWindow = append(inWindow, o)
		}
	}

	businessDuration := BusinessMinutes(start, end, sched, loc)
	if len(inWindow) == 0 {
		return 0, businessDuration
	}

	var inHours []domain.Observation
	for _, o := range inWindow {
		if WithinBusinessHours(o.Timestamp.In(loc), sched) {
			inHours = append(inHours, o)
		}
	}
	if len(inHours) == 0 {
		return 0, businessDuration
	}

	active, inactive := Interpolate(inHours, start, end)
	observed := active + inactive
	if observed == 0 {
		return 0, 0
	}

	scale := businessDuration / observed
	return active * scale, inactive * scale
}
