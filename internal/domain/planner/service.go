package planner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

// Config drives schedule generation for the planner domain.
type Config struct {
	Timezone *time.Location
}

// Gate is notified when a user's profile clears submission, so the results
// view can be unlocked for that session.
type Gate interface {
	ProfileSubmitted(userID int64)
}

// Service owns the live draft per user: seeding it from the stored profile,
// applying edits, and submitting the reconciled result.
type Service interface {
	Draft(ctx context.Context, userID int64) (DraftView, error)
	AddChore(ctx context.Context, userID int64) (DraftView, error)
	RemoveChore(ctx context.Context, userID int64, index int) (DraftView, error)
	UpdateChore(ctx context.Context, userID int64, index int, patch ChorePatch) (DraftView, error)
	AddItem(ctx context.Context, userID int64) (DraftView, error)
	RemoveItem(ctx context.Context, userID int64, index int) (DraftView, error)
	UpdateItem(ctx context.Context, userID int64, index int, patch ItemPatch) (DraftView, error)
	AddSlot(ctx context.Context, userID int64, dayIndex int) (DraftView, error)
	RemoveSlot(ctx context.Context, userID int64, dayIndex, slotIndex int) (DraftView, error)
	UpdateSlot(ctx context.Context, userID int64, dayIndex, slotIndex int, patch SlotPatch) (DraftView, error)
	UpdateAmenities(ctx context.Context, userID int64, patch AmenitiesPatch) (DraftView, error)
	Submit(ctx context.Context, userID int64) (Profile, error)
	Discard(userID int64)
}

// DraftView is the form state serialized for the editing surface, row ids
// included so clients can keep per-row state across removals.
type DraftView struct {
	Chores            []ChoreRow    `json:"chores"`
	Items             []ItemRow     `json:"items"`
	Schedule          []DayView     `json:"schedule"`
	HasHumidifier     bool          `json:"hasHumidifier"`
	HasAirConditioner bool          `json:"hasAirConditioner"`
	HasDryer          bool          `json:"hasDryer"`
}

// ChoreRow pairs a chore with its stable row id.
type ChoreRow struct {
	ID string `json:"id"`
	ChoreSetting
}

// ItemRow pairs an item with its stable row id.
type ItemRow struct {
	ID string `json:"id"`
	Item
}

// SlotRow pairs a slot with its stable row id.
type SlotRow struct {
	ID string `json:"id"`
	ScheduleSlot
}

// DayView renders one schedule day; the date is read-only.
type DayView struct {
	Date  string    `json:"date"`
	Slots []SlotRow `json:"slots"`
}

type service struct {
	cfg    Config
	repo   Repository
	gate   Gate
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	drafts map[int64]*Form
}

// NewService wires up the planner domain.
func NewService(cfg Config, repo Repository, gate Gate, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		gate:   gate,
		logger: logger.With("component", "planner.service"),
		now:    time.Now,
		drafts: make(map[int64]*Form),
	}
}

// Draft loads the stored profile, reconciles it against fresh defaults and
// seeds (or replaces) the user's live draft.
func (s *service) Draft(ctx context.Context, userID int64) (DraftView, error) {
	stored, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		// A real store failure is surfaced; only the no-row branch may
		// fall back to defaults.
		return DraftView{}, apperrors.Wrap("store_error", "failed to load stored profile", err)
	}
	var partial *PartialProfile
	if found {
		partial = &stored
	}
	profile := Reconcile(partial, s.now(), s.cfg.Timezone)

	s.mu.Lock()
	defer s.mu.Unlock()
	form := NewForm(profile)
	s.drafts[userID] = form
	s.logger.Info("draft seeded", "user_id", userID, "stored", found, "chores", len(profile.Chores))
	return s.viewLocked(form), nil
}

func (s *service) AddChore(ctx context.Context, userID int64) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		f.AddChore()
		return nil
	})
}

func (s *service) RemoveChore(ctx context.Context, userID int64, index int) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		return f.RemoveChore(index)
	})
}

func (s *service) UpdateChore(ctx context.Context, userID int64, index int, patch ChorePatch) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		return f.UpdateChore(index, patch)
	})
}

func (s *service) AddItem(ctx context.Context, userID int64) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		f.AddItem()
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, userID int64, index int) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		return f.RemoveItem(index)
	})
}

func (s *service) UpdateItem(ctx context.Context, userID int64, index int, patch ItemPatch) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		return f.UpdateItem(index, patch)
	})
}

func (s *service) AddSlot(ctx context.Context, userID int64, dayIndex int) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		_, err := f.AddSlot(dayIndex)
		return err
	})
}

func (s *service) RemoveSlot(ctx context.Context, userID int64, dayIndex, slotIndex int) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		return f.RemoveSlot(dayIndex, slotIndex)
	})
}

func (s *service) UpdateSlot(ctx context.Context, userID int64, dayIndex, slotIndex int, patch SlotPatch) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		return f.UpdateSlot(dayIndex, slotIndex, patch)
	})
}

func (s *service) UpdateAmenities(ctx context.Context, userID int64, patch AmenitiesPatch) (DraftView, error) {
	return s.edit(userID, func(f *Form) error {
		f.SetAmenities(patch)
		return nil
	})
}

// Submit validates the draft, persists it and unlocks the results gate.
// An upsert failure aborts before the gate is touched.
func (s *service) Submit(ctx context.Context, userID int64) (Profile, error) {
	s.mu.Lock()
	form, ok := s.drafts[userID]
	s.mu.Unlock()
	if !ok {
		return Profile{}, apperrors.Wrap("not_found", "no active draft, load the draft first", nil)
	}

	profile, err := form.Submit()
	if err != nil {
		return Profile{}, apperrors.Wrap("validation_failed", "profile contains invalid fields", err)
	}

	if err := s.repo.Upsert(ctx, userID, profile); err != nil {
		return Profile{}, apperrors.Wrap("store_error", "failed to save profile", err)
	}

	// The session may have ended while the upsert was in flight; a defunct
	// draft must not unlock the results view.
	s.mu.Lock()
	_, alive := s.drafts[userID]
	s.mu.Unlock()
	if !alive {
		return Profile{}, apperrors.Wrap("not_found", "session ended during submit", nil)
	}

	s.gate.ProfileSubmitted(userID)
	s.logger.Info("profile submitted", "user_id", userID, "chores", len(profile.Chores), "items", len(profile.Items))
	return profile, nil
}

// Discard drops the user's draft, typically on session loss. Results from
// requests still in flight for that draft are then rejected instead of
// being applied to a defunct form.
func (s *service) Discard(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}

func (s *service) edit(userID int64, apply func(*Form) error) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, ok := s.drafts[userID]
	if !ok {
		return DraftView{}, apperrors.Wrap("not_found", "no active draft, load the draft first", nil)
	}
	if err := apply(form); err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			return DraftView{}, apperrors.Wrap("invalid_input", err.Error(), err)
		}
		return DraftView{}, err
	}
	return s.viewLocked(form), nil
}

func (s *service) viewLocked(form *Form) DraftView {
	profile := form.Snapshot()
	view := DraftView{
		Chores:            make([]ChoreRow, 0, len(profile.Chores)),
		Items:             make([]ItemRow, 0, len(profile.Items)),
		Schedule:          make([]DayView, 0, len(profile.Schedule)),
		HasHumidifier:     profile.HasHumidifier,
		HasAirConditioner: profile.HasAirConditioner,
		HasDryer:          profile.HasDryer,
	}
	for i, chore := range profile.Chores {
		id, _ := form.ChoreID(i)
		view.Chores = append(view.Chores, ChoreRow{ID: id, ChoreSetting: chore})
	}
	for i, item := range profile.Items {
		id, _ := form.ItemID(i)
		view.Items = append(view.Items, ItemRow{ID: id, Item: item})
	}
	for di, day := range profile.Schedule {
		dayView := DayView{Date: day.Date, Slots: make([]SlotRow, 0, len(day.Slots))}
		for si, slot := range day.Slots {
			id, _ := form.SlotID(di, si)
			dayView.Slots = append(dayView.Slots, SlotRow{ID: id, ScheduleSlot: slot})
		}
		view.Schedule = append(view.Schedule, dayView)
	}
	return view
}
