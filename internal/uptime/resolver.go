package uptime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/repository"
)

// ErrUnknownTimezone is returned when a store's resolved timezone name is not
// a valid IANA identifier. It is fatal to that store's computation only; the
// report as a whole carries on without the store.
var ErrUnknownTimezone = errors.New("unknown timezone")

// ScheduleResolver turns business hours configuration into a weekly schedule.
type ScheduleResolver struct {
	repo repository.BusinessHoursRepository
}

func NewScheduleResolver(repo repository.BusinessHoursRepository) *ScheduleResolver {
	return &ScheduleResolver{repo: repo}
}

// Resolve returns the store's weekly schedule. A store with no configured
// rows gets the sentinel always-open schedule; a store with rows gets exactly
// the configured weekdays, and weekdays without a row count as closed.
func (r *ScheduleResolver) Resolve(ctx context.Context, storeID string) (domain.WeeklySchedule, error) {
	rows, err := r.repo.BusinessHours(ctx, storeID)
	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("failed to resolve business hours: %w", err)
	}

	if len(rows) == 0 {
		return domain.AlwaysOpen(), nil
	}

	days := make(map[int]domain.DayHours, len(rows))
	for _, row := range rows {
		days[row.DayOfWeek] = domain.DayHours{Open: row.Open, Close: row.Close}
	}

	return domain.WeeklySchedule{Days: days}, nil
}

// TimezoneResolver turns timezone assignments into *time.Location.
type TimezoneResolver struct {
	repo        repository.TimezoneRepository
	defaultName string
}

func NewTimezoneResolver(repo repository.TimezoneRepository, defaultName string) *TimezoneResolver {
	return &TimezoneResolver{repo: repo, defaultName: defaultName}
}

// Resolve returns the store's timezone, falling back to the configured
// default when the store has no assignment. An invalid IANA name fails with
// ErrUnknownTimezone rather than silently falling back mid-computation.
func (r *TimezoneResolver) Resolve(ctx context.Context, storeID string) (*time.Location, error) {
	name, err := r.repo.Timezone(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}
	if name == "" {
		name = r.defaultName
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}

	return loc, nil
}
