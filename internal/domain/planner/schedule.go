package planner

import (
	"time"

	"github.com/yanqian/chore-planner/pkg/util"
)

// scheduleDays is the fixed planning horizon: today and tomorrow.
const scheduleDays = 2

const (
	defaultSlotStart = "09:00"
	defaultSlotEnd   = "17:00"
)

// DefaultSchedule produces the canonical two-day skeleton anchored on now's
// local date in loc. Pure: two calls within the same local day are identical,
// and both dates roll forward together after local midnight.
func DefaultSchedule(now time.Time, loc *time.Location) []DaySchedule {
	return []DaySchedule{
		{Date: util.DateIn(now, loc), Slots: []ScheduleSlot{defaultSlot()}},
		{Date: util.NextDayIn(now, loc), Slots: []ScheduleSlot{defaultSlot()}},
	}
}

func defaultSlot() ScheduleSlot {
	return ScheduleSlot{Start: defaultSlotStart, End: defaultSlotEnd}
}

func defaultChore() ChoreSetting {
	return ChoreSetting{Name: "", IdealFrequency: 2, LastPerformedDate: ""}
}

func defaultItem() Item {
	return Item{Name: ""}
}
