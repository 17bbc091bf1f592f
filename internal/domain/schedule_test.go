package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input string
		want  ClockTime
	}{
		{"00:00:00", ClockTime{0, 0, 0}},
		{"09:30:15", ClockTime{9, 30, 15}},
		{"23:59:59", ClockTime{23, 59, 59}},
		{"15:04", ClockTime{15, 4, 0}},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseClockTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "25:00:00", "12:60:00", "12:00:61", "noon", "-1:00:00"} {
		_, err := ParseClockTime(input)
		assert.Error(t, err, input)
	}
}

func TestClockTimeOrdering(t *testing.T) {
	open := ClockTime{9, 0, 0}
	close := ClockTime{17, 0, 0}

	assert.True(t, close.After(open))
	assert.False(t, open.After(close))
	assert.False(t, open.After(open))
	assert.Equal(t, 9*3600, open.Seconds())
}

func TestAlwaysOpen(t *testing.T) {
	sched := AlwaysOpen()

	assert.True(t, sched.Sentinel)
	require.Len(t, sched.Days, 7)
	for day := 0; day < 7; day++ {
		hours, ok := sched.Days[day]
		require.True(t, ok, "day %d missing", day)
		assert.Equal(t, ClockTime{0, 0, 0}, hours.Open)
		assert.Equal(t, ClockTime{23, 59, 59}, hours.Close)
	}
}
