package planner

// ChoreSetting is one recurring weather-sensitive task.
type ChoreSetting struct {
	Name              string `json:"name"`
	IdealFrequency    int    `json:"idealFrequency"`
	LastPerformedDate string `json:"lastPerformedDate"`
}

// Item is a weather-dependent belonging to remember.
type Item struct {
	Name string `json:"name"`
}

// ScheduleSlot is one contiguous outing window within a day.
type ScheduleSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule holds the outing windows for a single calendar day.
// Date is immutable once generated.
type DaySchedule struct {
	Date  string         `json:"date"`
	Slots []ScheduleSlot `json:"slots"`
}

// Profile is the household planning aggregate. Schedule always holds exactly
// two entries: today and tomorrow, in that order.
type Profile struct {
	Chores            []ChoreSetting `json:"chores"`
	Items             []Item         `json:"items"`
	Schedule          []DaySchedule  `json:"schedule"`
	HasHumidifier     bool           `json:"hasHumidifier"`
	HasAirConditioner bool           `json:"hasAirConditioner"`
	HasDryer          bool           `json:"hasDryer"`
}

// PartialProfile is what the store can return: every field may be absent.
// Absence and zero value are distinct, hence the pointers for the flags.
type PartialProfile struct {
	Chores            []ChoreSetting
	Items             []Item
	Schedule          []DaySchedule
	HasHumidifier     *bool
	HasAirConditioner *bool
	HasDryer          *bool
}
