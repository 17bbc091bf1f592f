package uptime

import (
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// ToLocal converts a UTC instant to local wall-clock time. DST is honored at
// the instant in question.
func ToLocal(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// mondayIndex maps time.Weekday (Sunday=0) to the dataset's weekday numbering
// (0=Monday .. 6=Sunday).
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// clockSeconds is the local time of day as seconds since local midnight.
func clockSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// WithinBusinessHours reports whether a local instant falls inside the
// schedule entry of its own local weekday. An overnight entry (close <= open)
// matches both the evening after open and the morning before close.
func WithinBusinessHours(local time.Time, sched domain.WeeklySchedule) bool {
	if sched.Sentinel {
		return true
	}

	hours, ok := sched.Days[mondayIndex(local.Weekday())]
	if !ok {
		return false
	}

	now := clockSeconds(local)
	open := hours.Open.Seconds()
	close := hours.Close.Seconds()

	if open < close {
		return now >= open && now <= close
	}
	// close <= open spans into the next local day
	return now >= open || now <= close
}
