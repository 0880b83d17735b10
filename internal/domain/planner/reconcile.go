package planner

import "time"

// Reconcile merges a possibly partial stored profile with computed defaults
// into a complete Profile. stored == nil means no row existed; any other
// store failure must be surfaced by the caller, never funneled in here.
//
// The stored schedule is adopted all-or-nothing: only an exactly two-entry
// schedule survives, anything else is replaced wholesale by the fresh
// defaults. This guards against rows whose dates drifted from today/tomorrow.
// Chores, items and amenity flags are defaulted independently of schedule
// validity.
func Reconcile(stored *PartialProfile, now time.Time, loc *time.Location) Profile {
	out := Profile{
		Chores:   []ChoreSetting{},
		Items:    []Item{},
		Schedule: DefaultSchedule(now, loc),
	}
	if stored == nil {
		return out
	}
	if stored.Chores != nil {
		out.Chores = stored.Chores
	}
	if stored.Items != nil {
		out.Items = stored.Items
	}
	if len(stored.Schedule) == scheduleDays {
		out.Schedule = stored.Schedule
	}
	if stored.HasHumidifier != nil {
		out.HasHumidifier = *stored.HasHumidifier
	}
	if stored.HasAirConditioner != nil {
		out.HasAirConditioner = *stored.HasAirConditioner
	}
	if stored.HasDryer != nil {
		out.HasDryer = *stored.HasDryer
	}
	return out
}
