package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/chore-planner/internal/domain/auth"
)

func TestMemoryRepositoryCreateAndLookup(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, err := repo.Create(ctx, "taro@example.com", "Taro", "hash")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	byEmail, found, err := repo.GetByEmail(ctx, "taro@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user.ID, byEmail.ID)

	byID, found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "taro@example.com", byID.Email)

	_, found, err = repo.GetByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositoryDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "taro@example.com", "Taro", "hash")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "taro@example.com", "Jiro", "hash")
	require.ErrorIs(t, err, auth.ErrEmailExists)
}

func TestMemoryRepositoryIdentityUpsert(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, err := repo.Create(ctx, "taro@example.com", "Taro", "hash")
	require.NoError(t, err)

	created, err := repo.UpsertIdentity(ctx, auth.Identity{
		UserID:          user.ID,
		Provider:        "google",
		ProviderSubject: "sub-1",
		ProviderEmail:   "taro@example.com",
		RefreshToken:    "encrypted-1",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// A refresh without a new token keeps the previous one.
	updated, err := repo.UpsertIdentity(ctx, auth.Identity{
		UserID:          user.ID,
		Provider:        "google",
		ProviderSubject: "sub-1",
		ProviderEmail:   "renamed@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "encrypted-1", updated.RefreshToken)
	require.Equal(t, "renamed@example.com", updated.ProviderEmail)

	byUser, found, err := repo.GetIdentityByUser(ctx, user.ID, "google")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, updated, byUser)

	bySubject, found, err := repo.GetIdentity(ctx, "google", "sub-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, updated, bySubject)
}
