package planner

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

type stubRepository struct {
	getFn    func(ctx context.Context, userID int64) (PartialProfile, bool, error)
	upsertFn func(ctx context.Context, userID int64, profile Profile) error
	upserts  int
}

func (r *stubRepository) Get(ctx context.Context, userID int64) (PartialProfile, bool, error) {
	if r.getFn != nil {
		return r.getFn(ctx, userID)
	}
	return PartialProfile{}, false, nil
}

func (r *stubRepository) Upsert(ctx context.Context, userID int64, profile Profile) error {
	r.upserts++
	if r.upsertFn != nil {
		return r.upsertFn(ctx, userID, profile)
	}
	return nil
}

type stubGate struct {
	submitted []int64
}

func (g *stubGate) ProfileSubmitted(userID int64) {
	g.submitted = append(g.submitted, userID)
}

func newServiceUnderTest(t *testing.T, repo Repository, gate Gate) *service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(Config{Timezone: testZone}, repo, gate, logger).(*service)
	svc.now = func() time.Time {
		return time.Date(2024, 1, 2, 10, 0, 0, 0, testZone)
	}
	return svc
}

func TestDraftSeedsFromStoredProfile(t *testing.T) {
	repo := &stubRepository{
		getFn: func(ctx context.Context, userID int64) (PartialProfile, bool, error) {
			require.Equal(t, int64(7), userID)
			return PartialProfile{
				Chores: []ChoreSetting{{Name: "wash dishes", IdealFrequency: 1}},
			}, true, nil
		},
	}
	svc := newServiceUnderTest(t, repo, &stubGate{})

	view, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, view.Chores, 1)
	require.Equal(t, "wash dishes", view.Chores[0].Name)
	require.NotEmpty(t, view.Chores[0].ID)
	require.Len(t, view.Schedule, 2)
	require.Equal(t, "2024-01-02", view.Schedule[0].Date)
	require.Equal(t, "2024-01-03", view.Schedule[1].Date)
}

func TestDraftMissingRowFallsBackToDefaults(t *testing.T) {
	svc := newServiceUnderTest(t, &stubRepository{}, &stubGate{})

	view, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, view.Chores)
	require.Len(t, view.Schedule, 2)
	require.Len(t, view.Schedule[0].Slots, 1)
}

func TestDraftSurfacesStoreError(t *testing.T) {
	repo := &stubRepository{
		getFn: func(ctx context.Context, userID int64) (PartialProfile, bool, error) {
			return PartialProfile{}, false, errors.New("connection refused")
		},
	}
	svc := newServiceUnderTest(t, repo, &stubGate{})

	_, err := svc.Draft(context.Background(), 7)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "store_error"))
}

func TestEditWithoutDraftRejected(t *testing.T) {
	svc := newServiceUnderTest(t, &stubRepository{}, &stubGate{})

	_, err := svc.AddChore(context.Background(), 7)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestEditOutOfRangeIndex(t *testing.T) {
	svc := newServiceUnderTest(t, &stubRepository{}, &stubGate{})
	_, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.RemoveChore(context.Background(), 7, 4)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSubmitValidationFailureNeverHitsStore(t *testing.T) {
	repo := &stubRepository{}
	gate := &stubGate{}
	svc := newServiceUnderTest(t, repo, gate)

	_, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)
	_, err = svc.AddChore(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7)
	require.True(t, apperrors.IsCode(err, "validation_failed"))

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	require.Contains(t, validation.Fields, "chores.0.name")
	require.Zero(t, repo.upserts)
	require.Empty(t, gate.submitted)
}

func TestSubmitUpsertFailureKeepsGateClosed(t *testing.T) {
	repo := &stubRepository{
		upsertFn: func(ctx context.Context, userID int64, profile Profile) error {
			return errors.New("disk full")
		},
	}
	gate := &stubGate{}
	svc := newServiceUnderTest(t, repo, gate)

	_, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7)
	require.True(t, apperrors.IsCode(err, "store_error"))
	require.Empty(t, gate.submitted)
}

func TestSubmitSuccessOpensGate(t *testing.T) {
	repo := &stubRepository{}
	gate := &stubGate{}
	svc := newServiceUnderTest(t, repo, gate)

	_, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)
	name := "wash dishes"
	_, err = svc.UpdateAmenities(context.Background(), 7, AmenitiesPatch{HasDryer: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.AddChore(context.Background(), 7)
	require.NoError(t, err)
	_, err = svc.UpdateChore(context.Background(), 7, 0, ChorePatch{Name: &name})
	require.NoError(t, err)

	profile, err := svc.Submit(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, profile.HasDryer)
	require.Equal(t, 1, repo.upserts)
	require.Equal(t, []int64{7}, gate.submitted)
}

func TestSubmitAfterDiscardRejected(t *testing.T) {
	repo := &stubRepository{}
	gate := &stubGate{}
	svc := newServiceUnderTest(t, repo, gate)

	_, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)
	svc.Discard(7)

	_, err = svc.Submit(context.Background(), 7)
	require.True(t, apperrors.IsCode(err, "not_found"))
	require.Empty(t, gate.submitted)
}

func TestDiscardDuringUpsertDoesNotOpenGate(t *testing.T) {
	gate := &stubGate{}
	var svc *service
	repo := &stubRepository{
		upsertFn: func(ctx context.Context, userID int64, profile Profile) error {
			// Session drops while the write is in flight.
			svc.Discard(userID)
			return nil
		},
	}
	svc = newServiceUnderTest(t, repo, gate)

	_, err := svc.Draft(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7)
	require.True(t, apperrors.IsCode(err, "not_found"))
	require.Empty(t, gate.submitted)
}
