package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/chore-planner/pkg/util"
)

// ErrIndexOutOfRange signals an edit addressed a row that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// FieldErrors maps form paths such as "chores.0.name" to messages.
type FieldErrors map[string]string

// ValidationError reports the per-field failures that block submission.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile has %d invalid field(s)", len(e.Fields))
}

// ChorePatch carries partial edits to one chore row. Nil means unchanged.
type ChorePatch struct {
	Name              *string `json:"name"`
	IdealFrequency    *int    `json:"idealFrequency"`
	LastPerformedDate *string `json:"lastPerformedDate"`
}

// ItemPatch carries partial edits to one item row.
type ItemPatch struct {
	Name *string `json:"name"`
}

// SlotPatch carries partial edits to one outing slot.
type SlotPatch struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// AmenitiesPatch toggles the household amenity flags.
type AmenitiesPatch struct {
	HasHumidifier     *bool `json:"hasHumidifier"`
	HasAirConditioner *bool `json:"hasAirConditioner"`
	HasDryer          *bool `json:"hasDryer"`
}

// Form holds the single live editable Profile for one edit session.
//
// Repeated entries live in an arena keyed by a synthetic id; the visible
// ordering is a separate id slice. Removing a row deletes its id from the
// order without re-keying survivors, so edits in flight on other rows are
// never lost to index shifts.
type Form struct {
	chores     map[string]*ChoreSetting
	choreOrder []string

	items     map[string]*Item
	itemOrder []string

	// Day entries are fixed at two (today, tomorrow); only slots are mutable.
	days []*dayRows

	hasHumidifier     bool
	hasAirConditioner bool
	hasDryer          bool
}

type dayRows struct {
	date      string
	slots     map[string]*ScheduleSlot
	slotOrder []string
}

// NewForm seeds a form from a reconciled profile.
func NewForm(initial Profile) *Form {
	f := &Form{
		chores: make(map[string]*ChoreSetting),
		items:  make(map[string]*Item),
	}
	for _, chore := range initial.Chores {
		f.appendChore(chore)
	}
	for _, item := range initial.Items {
		f.appendItem(item)
	}
	f.days = make([]*dayRows, 0, len(initial.Schedule))
	for _, day := range initial.Schedule {
		rows := &dayRows{
			date:  day.Date,
			slots: make(map[string]*ScheduleSlot),
		}
		for _, slot := range day.Slots {
			s := slot
			id := uuid.NewString()
			rows.slots[id] = &s
			rows.slotOrder = append(rows.slotOrder, id)
		}
		f.days = append(f.days, rows)
	}
	f.hasHumidifier = initial.HasHumidifier
	f.hasAirConditioner = initial.HasAirConditioner
	f.hasDryer = initial.HasDryer
	return f
}

func (f *Form) appendChore(chore ChoreSetting) string {
	id := uuid.NewString()
	c := chore
	f.chores[id] = &c
	f.choreOrder = append(f.choreOrder, id)
	return id
}

func (f *Form) appendItem(item Item) string {
	id := uuid.NewString()
	it := item
	f.items[id] = &it
	f.itemOrder = append(f.itemOrder, id)
	return id
}

// AddChore appends a default chore row and returns its id.
func (f *Form) AddChore() string {
	return f.appendChore(defaultChore())
}

// RemoveChore deletes the chore at the visible index.
func (f *Form) RemoveChore(index int) error {
	if index < 0 || index >= len(f.choreOrder) {
		return fmt.Errorf("chore %d: %w", index, ErrIndexOutOfRange)
	}
	id := f.choreOrder[index]
	delete(f.chores, id)
	f.choreOrder = append(f.choreOrder[:index], f.choreOrder[index+1:]...)
	return nil
}

// UpdateChore applies a partial edit to the chore at the visible index.
func (f *Form) UpdateChore(index int, patch ChorePatch) error {
	if index < 0 || index >= len(f.choreOrder) {
		return fmt.Errorf("chore %d: %w", index, ErrIndexOutOfRange)
	}
	chore := f.chores[f.choreOrder[index]]
	if patch.Name != nil {
		chore.Name = *patch.Name
	}
	if patch.IdealFrequency != nil {
		chore.IdealFrequency = *patch.IdealFrequency
	}
	if patch.LastPerformedDate != nil {
		chore.LastPerformedDate = *patch.LastPerformedDate
	}
	return nil
}

// ChoreID exposes the stable row id at the visible index.
func (f *Form) ChoreID(index int) (string, bool) {
	if index < 0 || index >= len(f.choreOrder) {
		return "", false
	}
	return f.choreOrder[index], true
}

// AddItem appends a default item row and returns its id.
func (f *Form) AddItem() string {
	return f.appendItem(defaultItem())
}

// RemoveItem deletes the item at the visible index.
func (f *Form) RemoveItem(index int) error {
	if index < 0 || index >= len(f.itemOrder) {
		return fmt.Errorf("item %d: %w", index, ErrIndexOutOfRange)
	}
	id := f.itemOrder[index]
	delete(f.items, id)
	f.itemOrder = append(f.itemOrder[:index], f.itemOrder[index+1:]...)
	return nil
}

// UpdateItem applies a partial edit to the item at the visible index.
func (f *Form) UpdateItem(index int, patch ItemPatch) error {
	if index < 0 || index >= len(f.itemOrder) {
		return fmt.Errorf("item %d: %w", index, ErrIndexOutOfRange)
	}
	if patch.Name != nil {
		f.items[f.itemOrder[index]].Name = *patch.Name
	}
	return nil
}

// ItemID exposes the stable row id at the visible index.
func (f *Form) ItemID(index int) (string, bool) {
	if index < 0 || index >= len(f.itemOrder) {
		return "", false
	}
	return f.itemOrder[index], true
}

func (f *Form) day(index int) (*dayRows, error) {
	if index < 0 || index >= len(f.days) {
		return nil, fmt.Errorf("day %d: %w", index, ErrIndexOutOfRange)
	}
	return f.days[index], nil
}

// AddSlot appends a default 09:00-17:00 slot to the day and returns its id.
func (f *Form) AddSlot(dayIndex int) (string, error) {
	day, err := f.day(dayIndex)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	slot := defaultSlot()
	day.slots[id] = &slot
	day.slotOrder = append(day.slotOrder, id)
	return id, nil
}

// RemoveSlot deletes a slot from the day at the visible slot index.
func (f *Form) RemoveSlot(dayIndex, slotIndex int) error {
	day, err := f.day(dayIndex)
	if err != nil {
		return err
	}
	if slotIndex < 0 || slotIndex >= len(day.slotOrder) {
		return fmt.Errorf("slot %d: %w", slotIndex, ErrIndexOutOfRange)
	}
	id := day.slotOrder[slotIndex]
	delete(day.slots, id)
	day.slotOrder = append(day.slotOrder[:slotIndex], day.slotOrder[slotIndex+1:]...)
	return nil
}

// UpdateSlot applies a partial edit to a slot.
func (f *Form) UpdateSlot(dayIndex, slotIndex int, patch SlotPatch) error {
	day, err := f.day(dayIndex)
	if err != nil {
		return err
	}
	if slotIndex < 0 || slotIndex >= len(day.slotOrder) {
		return fmt.Errorf("slot %d: %w", slotIndex, ErrIndexOutOfRange)
	}
	slot := day.slots[day.slotOrder[slotIndex]]
	if patch.Start != nil {
		slot.Start = *patch.Start
	}
	if patch.End != nil {
		slot.End = *patch.End
	}
	return nil
}

// SlotID exposes the stable slot id for a day at the visible index.
func (f *Form) SlotID(dayIndex, slotIndex int) (string, bool) {
	day, err := f.day(dayIndex)
	if err != nil || slotIndex < 0 || slotIndex >= len(day.slotOrder) {
		return "", false
	}
	return day.slotOrder[slotIndex], true
}

// SetAmenities applies the amenity flag toggles.
func (f *Form) SetAmenities(patch AmenitiesPatch) {
	if patch.HasHumidifier != nil {
		f.hasHumidifier = *patch.HasHumidifier
	}
	if patch.HasAirConditioner != nil {
		f.hasAirConditioner = *patch.HasAirConditioner
	}
	if patch.HasDryer != nil {
		f.hasDryer = *patch.HasDryer
	}
}

// Snapshot materializes the current state in visible order.
func (f *Form) Snapshot() Profile {
	profile := Profile{
		Chores:            make([]ChoreSetting, 0, len(f.choreOrder)),
		Items:             make([]Item, 0, len(f.itemOrder)),
		Schedule:          make([]DaySchedule, 0, len(f.days)),
		HasHumidifier:     f.hasHumidifier,
		HasAirConditioner: f.hasAirConditioner,
		HasDryer:          f.hasDryer,
	}
	for _, id := range f.choreOrder {
		profile.Chores = append(profile.Chores, *f.chores[id])
	}
	for _, id := range f.itemOrder {
		profile.Items = append(profile.Items, *f.items[id])
	}
	for _, day := range f.days {
		out := DaySchedule{Date: day.date, Slots: make([]ScheduleSlot, 0, len(day.slotOrder))}
		for _, id := range day.slotOrder {
			out.Slots = append(out.Slots, *day.slots[id])
		}
		profile.Schedule = append(profile.Schedule, out)
	}
	return profile
}

// Validate checks every required field and returns per-field failures.
// Slot ordering (start before end) is deliberately not enforced.
func (f *Form) Validate() FieldErrors {
	errs := FieldErrors{}
	for i, id := range f.choreOrder {
		chore := f.chores[id]
		if strings.TrimSpace(chore.Name) == "" {
			errs[fmt.Sprintf("chores.%d.name", i)] = "name is required"
		}
		if chore.IdealFrequency <= 0 {
			errs[fmt.Sprintf("chores.%d.idealFrequency", i)] = "ideal frequency must be a positive number of days"
		}
		if chore.LastPerformedDate != "" && !util.ValidDate(chore.LastPerformedDate) {
			errs[fmt.Sprintf("chores.%d.lastPerformedDate", i)] = "date must be formatted as YYYY-MM-DD"
		}
	}
	for i, id := range f.itemOrder {
		if strings.TrimSpace(f.items[id].Name) == "" {
			errs[fmt.Sprintf("items.%d.name", i)] = "name is required"
		}
	}
	for di, day := range f.days {
		for si, id := range day.slotOrder {
			slot := day.slots[id]
			if !util.ValidClock(slot.Start) {
				errs[fmt.Sprintf("schedule.%d.slots.%d.start", di, si)] = "start must be formatted as HH:MM"
			}
			if !util.ValidClock(slot.End) {
				errs[fmt.Sprintf("schedule.%d.slots.%d.end", di, si)] = "end must be formatted as HH:MM"
			}
		}
	}
	return errs
}

// Submit validates the form and returns the final Profile. A validation
// failure blocks submission without mutating any row.
func (f *Form) Submit() (Profile, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return Profile{}, &ValidationError{Fields: errs}
	}
	return f.Snapshot(), nil
}
