package uptime

import (
	"testing"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weekdaySchedule Mon-Fri 09:00-17:00, explicit (non-sentinel).
func weekdaySchedule() domain.WeeklySchedule {
	days := make(map[int]domain.DayHours)
	for d := 0; d < 5; d++ {
		days[d] = domain.DayHours{
			Open:  domain.ClockTime{Hour: 9},
			Close: domain.ClockTime{Hour: 17},
		}
	}
	return domain.WeeklySchedule{Days: days}
}

func TestBusinessMinutes_SentinelCoversFullRange(t *testing.T) {
	// 2023-01-02 is a Monday
	start := time.Date(2023, 1, 2, 3, 17, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)

	got := BusinessMinutes(start, end, domain.AlwaysOpen(), time.UTC)

	assert.InDelta(t, 36*60.0, got, 1e-9)
}

func TestBusinessMinutes_SingleDayInsideHours(t *testing.T) {
	start := time.Date(2023, 1, 2, 14, 0, 0, 0, time.UTC) // Monday
	end := start.Add(time.Hour)

	got := BusinessMinutes(start, end, weekdaySchedule(), time.UTC)

	assert.InDelta(t, 60.0, got, 1e-9)
}

func TestBusinessMinutes_ClipsToSchedule(t *testing.T) {
	// Monday 08:00-18:00 around a 09:00-17:00 day
	start := time.Date(2023, 1, 2, 8, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 18, 0, 0, 0, time.UTC)

	got := BusinessMinutes(start, end, weekdaySchedule(), time.UTC)

	assert.InDelta(t, 8*60.0, got, 1e-9)
}

func TestBusinessMinutes_ClosedWeekdayIsZero(t *testing.T) {
	// Saturday has no schedule entry on an explicit schedule
	start := time.Date(2023, 1, 7, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	got := BusinessMinutes(start, end, weekdaySchedule(), time.UTC)

	assert.Equal(t, 0.0, got)
}

func TestBusinessMinutes_MultiDayRange(t *testing.T) {
	// Friday 2023-01-06 12:00 through Monday 2023-01-09 12:00:
	// Friday 12:00-17:00 = 300, weekend closed, Monday 09:00-12:00 = 180.
	start := time.Date(2023, 1, 6, 12, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 9, 12, 0, 0, 0, time.UTC)

	got := BusinessMinutes(start, end, weekdaySchedule(), time.UTC)

	assert.InDelta(t, 480.0, got, 1e-9)
}

func TestBusinessMinutes_Additive(t *testing.T) {
	start := time.Date(2023, 1, 2, 6, 30, 0, 0, time.UTC)
	mid := time.Date(2023, 1, 4, 13, 45, 0, 0, time.UTC)
	end := time.Date(2023, 1, 8, 23, 0, 0, 0, time.UTC)

	whole := BusinessMinutes(start, end, weekdaySchedule(), time.UTC)
	split := BusinessMinutes(start, mid, weekdaySchedule(), time.UTC) +
		BusinessMinutes(mid, end, weekdaySchedule(), time.UTC)

	assert.InDelta(t, whole, split, 1e-6)
}

func TestBusinessMinutes_OvernightSpansMidnight(t *testing.T) {
	// Monday 22:00-06:00 only
	sched := domain.WeeklySchedule{Days: map[int]domain.DayHours{
		0: {Open: domain.ClockTime{Hour: 22}, Close: domain.ClockTime{Hour: 6}},
	}}

	start := time.Date(2023, 1, 2, 21, 0, 0, 0, time.UTC) // Monday 21:00
	end := time.Date(2023, 1, 3, 7, 0, 0, 0, time.UTC)    // Tuesday 07:00

	got := BusinessMinutes(start, end, sched, time.UTC)

	// Minutes on both sides of midnight: 22:00-24:00 and 00:00-06:00.
	assert.InDelta(t, 480.0, got, 1e-9)
}

func TestBusinessMinutes_RangeStartsInsideOvernightSpill(t *testing.T) {
	sched := domain.WeeklySchedule{Days: map[int]domain.DayHours{
		0: {Open: domain.ClockTime{Hour: 22}, Close: domain.ClockTime{Hour: 6}},
	}}

	// Tuesday morning is still Monday's overnight window.
	start := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 3, 7, 0, 0, 0, time.UTC)

	got := BusinessMinutes(start, end, sched, time.UTC)

	assert.InDelta(t, 360.0, got, 1e-9)
}

func TestBusinessMinutes_OpenEqualsCloseIsFullDay(t *testing.T) {
	// close == open is treated as spanning the whole following day
	sched := domain.WeeklySchedule{Days: map[int]domain.DayHours{
		0: {Open: domain.ClockTime{Hour: 8}, Close: domain.ClockTime{Hour: 8}},
	}}

	start := time.Date(2023, 1, 2, 8, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 3, 8, 0, 0, 0, time.UTC)

	got := BusinessMinutes(start, end, sched, time.UTC)

	assert.InDelta(t, 24*60.0, got, 1e-9)
}

func TestBusinessMinutes_LocalTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// Monday 09:00 CST == 15:00 UTC in January.
	start := time.Date(2023, 1, 2, 15, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	got := BusinessMinutes(start, end, weekdaySchedule(), loc)

	assert.InDelta(t, 60.0, got, 1e-9)
}

func TestBusinessMinutes_EmptyRange(t *testing.T) {
	at := time.Date(2023, 1, 2, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, BusinessMinutes(at, at, weekdaySchedule(), time.UTC))
	assert.Equal(t, 0.0, BusinessMinutes(at.Add(time.Hour), at, weekdaySchedule(), time.UTC))
}
