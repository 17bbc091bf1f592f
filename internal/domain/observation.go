package domain

import "time"

// Status is a point-in-time store status from the polling feed.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Observation is a single store status sample (store_status table).
// Timestamp is always UTC.
type Observation struct {
	StoreID   string
	Timestamp time.Time
	Status    Status
}
