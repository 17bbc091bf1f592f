package domain

import "fmt"

// ClockTime is a local wall-clock time of day (no date, no zone).
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime parses "15:04:05" or "15:04".
func ParseClockTime(s string) (ClockTime, error) {
	var c ClockTime
	n, err := fmt.Sscanf(s, "%d:%d:%d", &c.Hour, &c.Minute, &c.Second)
	if err != nil && n < 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", s)
	}
	return c, nil
}

// Seconds returns the offset from local midnight in seconds.
func (c ClockTime) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// After reports whether c is later in the day than o.
func (c ClockTime) After(o ClockTime) bool {
	return c.Seconds() > o.Seconds()
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// BusinessHours is one configured open interval for a store on one weekday
// (business_hours table). DayOfWeek uses 0=Monday .. 6=Sunday, matching the
// source dataset.
type BusinessHours struct {
	StoreID   string
	DayOfWeek int
	Open      ClockTime
	Close     ClockTime
}

// DayHours is the open/close pair for a single weekday.
type DayHours struct {
	Open  ClockTime
	Close ClockTime
}

// WeeklySchedule maps weekday (0=Monday .. 6=Sunday) to local open hours.
//
// Sentinel marks the implicit "no rows configured" schedule, which means the
// store is open around the clock. A weekday missing from Days on an explicit
// (non-sentinel) schedule means the store is closed that day. These two
// defaults are intentionally different and must not be collapsed.
type WeeklySchedule struct {
	Days     map[int]DayHours
	Sentinel bool
}

// AlwaysOpen returns the sentinel schedule used when a store has no
// configured business hours: open all 7 days, 00:00:00-23:59:59 local.
func AlwaysOpen() WeeklySchedule {
	days := make(map[int]DayHours, 7)
	for d := 0; d < 7; d++ {
		days[d] = DayHours{
			Open:  ClockTime{0, 0, 0},
			Close: ClockTime{23, 59, 59},
		}
	}
	return WeeklySchedule{Days: days, Sentinel: true}
}

// StoreTimezone is a store's IANA timezone assignment (store_timezones table).
type StoreTimezone struct {
	StoreID  string
	Timezone string
}
