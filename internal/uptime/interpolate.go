package uptime

import (
	"sort"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// Interpolate reconciles sparse point samples into continuous coverage of
// [start, end) and returns (activeMinutes, inactiveMinutes).
//
// Observation timestamps partition the range into segments. Each segment
// carries the status of the observation that opens it; the leading gap from
// start to the first observation holds that first status backward. The two
// totals always sum to exactly end-start in minutes.
//
// An empty observation set returns (0, 0): "no data" is deliberately distinct
// from "the whole range was inactive", and callers handle it separately.
func Interpolate(observations []domain.Observation, start, end time.Time) (float64, float64) {
	if len(observations) == 0 {
		return 0, 0
	}

	obs := make([]domain.Observation, len(observations))
	copy(obs, observations)
	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Timestamp.Before(obs[j].Timestamp)
	})

	var active, inactive float64
	for i, o := range obs {
		segStart := o.Timestamp
		if i == 0 {
			segStart = start
		}
		segEnd := end
		if i < len(obs)-1 {
			segEnd = obs[i+1].Timestamp
		}

		minutes := segEnd.Sub(segStart).Minutes()
		if minutes <= 0 {
			continue
		}
		if o.Status == domain.StatusActive {
			active += minutes
		} else {
			inactive += minutes
		}
	}

	return active, inactive
}
