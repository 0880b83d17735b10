package profilerepo

import (
	"context"
	"sync"

	"github.com/yanqian/chore-planner/internal/domain/planner"
)

// MemoryRepository provides an in-memory profile store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int64]planner.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[int64]planner.Profile)}
}

// Get returns the stored profile for a user.
func (r *MemoryRepository) Get(_ context.Context, userID int64) (planner.PartialProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return planner.PartialProfile{}, false, nil
	}
	humidifier := profile.HasHumidifier
	airConditioner := profile.HasAirConditioner
	dryer := profile.HasDryer
	return planner.PartialProfile{
		Chores:            profile.Chores,
		Items:             profile.Items,
		Schedule:          profile.Schedule,
		HasHumidifier:     &humidifier,
		HasAirConditioner: &airConditioner,
		HasDryer:          &dryer,
	}, true, nil
}

// Upsert stores the profile, replacing any previous row.
func (r *MemoryRepository) Upsert(_ context.Context, userID int64, profile planner.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[userID] = profile
	return nil
}

var _ planner.Repository = (*MemoryRepository)(nil)
