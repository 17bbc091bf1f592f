package uptime

import (
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// BusinessMinutes computes the total in-schedule minutes inside the UTC range
// [start, end).
//
// The range is walked one local calendar day at a time. Each scheduled day
// contributes its local open interval, clipped to the range; an entry whose
// close is at or before its open spans into the following local day. The walk
// starts one day early so a range that begins inside the previous day's
// overnight spill is still counted.
func BusinessMinutes(start, end time.Time, sched domain.WeeklySchedule, loc *time.Location) float64 {
	if !start.Before(end) {
		return 0
	}

	// The sentinel schedule means always open: full calendar coverage, not
	// 7x 00:00:00-23:59:59 with one-second seams.
	if sched.Sentinel {
		return end.Sub(start).Minutes()
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	day = day.AddDate(0, 0, -1)
	lastDay := time.Date(localEnd.Year(), localEnd.Month(), localEnd.Day(), 0, 0, 0, 0, loc)

	total := 0.0
	for !day.After(lastDay) {
		hours, ok := sched.Days[mondayIndex(day.Weekday())]
		if ok {
			open := clockOn(day, hours.Open, loc)
			close := clockOn(day, hours.Close, loc)
			if !hours.Close.After(hours.Open) {
				close = clockOn(day.AddDate(0, 0, 1), hours.Close, loc)
			}

			segStart := start
			if open.After(segStart) {
				segStart = open
			}
			segEnd := end
			if close.Before(segEnd) {
				segEnd = close
			}
			if segStart.Before(segEnd) {
				total += segEnd.Sub(segStart).Minutes()
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return total
}

// clockOn pins a wall-clock time onto a local calendar day. Going through
// time.Date keeps the wall clock correct across DST transitions.
func clockOn(day time.Time, c domain.ClockTime, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, c.Second, 0, loc)
}
