package profilerepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/chore-planner/internal/domain/planner"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, found, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.False(t, found)

	profile := planner.Profile{
		Chores: []planner.ChoreSetting{{Name: "wash dishes", IdealFrequency: 1}},
		Items:  []planner.Item{{Name: "umbrella"}},
		Schedule: []planner.DaySchedule{
			{Date: "2024-01-02", Slots: []planner.ScheduleSlot{{Start: "09:00", End: "17:00"}}},
			{Date: "2024-01-03", Slots: nil},
		},
		HasDryer: true,
	}
	require.NoError(t, repo.Upsert(ctx, 7, profile))

	stored, found, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, profile.Chores, stored.Chores)
	require.Equal(t, profile.Schedule, stored.Schedule)
	require.NotNil(t, stored.HasDryer)
	require.True(t, *stored.HasDryer)
	require.NotNil(t, stored.HasHumidifier)
	require.False(t, *stored.HasHumidifier)
}

func TestMemoryRepositoryUpsertReplaces(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 7, planner.Profile{Items: []planner.Item{{Name: "umbrella"}}}))
	require.NoError(t, repo.Upsert(ctx, 7, planner.Profile{Items: []planner.Item{{Name: "raincoat"}}}))

	stored, found, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []planner.Item{{Name: "raincoat"}}, stored.Items)
}

func TestMemoryRepositoryIsolatesUsers(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 7, planner.Profile{HasHumidifier: true}))

	_, found, err := repo.Get(ctx, 8)
	require.NoError(t, err)
	require.False(t, found)
}
