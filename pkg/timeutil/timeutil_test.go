package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey_TimezoneBoundary(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 03:30 UTC on Aug 31 is still Aug 30 in New York.
	utc := time.Date(2026, 8, 31, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-31", DateKey(utc, time.UTC))
	assert.Equal(t, "2026-08-30", DateKey(utc, ny))
}

func TestSameDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	a := time.Date(2026, 8, 31, 3, 30, 0, 0, time.UTC)
	b := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(a, b, ny))
}

func TestStartOfDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ts := time.Date(2026, 8, 31, 15, 45, 12, 0, ny)
	start := StartOfDay(ts, ny)

	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, ny), start)
}

func TestLocalHourMinute(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 16:00 UTC is 12:00 in New York during DST.
	ts := time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC)
	hour, minute := LocalHourMinute(ts, ny)
	assert.Equal(t, 12, hour)
	assert.Equal(t, 0, minute)
}
