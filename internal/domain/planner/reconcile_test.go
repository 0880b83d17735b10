package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestReconcileNothingStored(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, testZone)

	profile := Reconcile(nil, now, testZone)

	require.Empty(t, profile.Chores)
	require.NotNil(t, profile.Chores)
	require.Empty(t, profile.Items)
	require.NotNil(t, profile.Items)
	require.Equal(t, DefaultSchedule(now, testZone), profile.Schedule)
	require.False(t, profile.HasHumidifier)
	require.False(t, profile.HasAirConditioner)
	require.False(t, profile.HasDryer)
}

func TestReconcileAdoptsStoredFields(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, testZone)
	stored := &PartialProfile{
		Chores: []ChoreSetting{{Name: "wash dishes", IdealFrequency: 1}},
		Schedule: []DaySchedule{
			{Date: "2024-01-02", Slots: []ScheduleSlot{{Start: "10:00", End: "12:00"}}},
			{Date: "2024-01-03", Slots: nil},
		},
		HasDryer: boolPtr(true),
	}

	profile := Reconcile(stored, now, testZone)

	require.Equal(t, stored.Chores, profile.Chores)
	require.Empty(t, profile.Items)
	require.Equal(t, stored.Schedule, profile.Schedule)
	require.True(t, profile.HasDryer)
	require.False(t, profile.HasHumidifier)
}

func TestReconcileDiscardsWrongLengthSchedule(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, testZone)

	for _, length := range []int{0, 1, 3} {
		stored := &PartialProfile{
			Chores:   []ChoreSetting{{Name: "laundry", IdealFrequency: 2}},
			Schedule: make([]DaySchedule, length),
		}

		profile := Reconcile(stored, now, testZone)

		// Malformed schedules are replaced wholesale, chores still adopted.
		require.Equal(t, DefaultSchedule(now, testZone), profile.Schedule, "length %d", length)
		require.Equal(t, stored.Chores, profile.Chores)
	}
}

func TestReconcileAmenityAbsenceDistinctFromFalse(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, testZone)
	stored := &PartialProfile{
		HasHumidifier:     boolPtr(false),
		HasAirConditioner: boolPtr(true),
	}

	profile := Reconcile(stored, now, testZone)

	require.False(t, profile.HasHumidifier)
	require.True(t, profile.HasAirConditioner)
	require.False(t, profile.HasDryer)
}
