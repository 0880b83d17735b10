package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateInRespectsLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	// 16:30 UTC on Jan 2 is Jan 3 in JST.
	instant := time.Date(2024, 1, 2, 16, 30, 0, 0, time.UTC)

	require.Equal(t, "2024-01-02", DateIn(instant, time.UTC))
	require.Equal(t, "2024-01-03", DateIn(instant, jst))
	require.Equal(t, "2024-01-04", NextDayIn(instant, jst))
}

func TestNextDayInCrossesMonthBoundary(t *testing.T) {
	instant := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-02-01", NextDayIn(instant, time.UTC))
}

func TestValidDate(t *testing.T) {
	require.True(t, ValidDate("2024-01-02"))
	require.False(t, ValidDate("2024-1-2"))
	require.False(t, ValidDate("02/01/2024"))
	require.False(t, ValidDate("2024-02-30"))
	require.False(t, ValidDate(""))
}

func TestValidClock(t *testing.T) {
	require.True(t, ValidClock("09:00"))
	require.True(t, ValidClock("23:59"))
	require.False(t, ValidClock("9:00"))
	require.False(t, ValidClock("24:00"))
	require.False(t, ValidClock("9am"))
	require.False(t, ValidClock(""))
}
