package domain

// StoreMetrics is one report row for a store.
//
// Units are part of the external contract and intentionally differ by window:
// the 1-hour figures are minutes, the day/week figures are hours.
type StoreMetrics struct {
	StoreID          string
	UptimeLastHour   float64 // minutes
	UptimeLastDay    float64 // hours
	UptimeLastWeek   float64 // hours
	DowntimeLastHour float64 // minutes
	DowntimeLastDay  float64 // hours
	DowntimeLastWeek float64 // hours
}
