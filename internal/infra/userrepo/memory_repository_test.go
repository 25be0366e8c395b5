package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cocktail-bac/internal/domain/auth"
	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

func TestMemoryRepositoryCreateAndLookup(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, err := repo.Create(ctx, "a@b.co", "Ada", "hash")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	_, err = repo.Create(ctx, "a@b.co", "Other", "hash")
	require.ErrorIs(t, err, auth.ErrEmailExists)

	found, ok, err := repo.GetByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, user.ID, found.ID)

	_, ok, err = repo.GetByID(ctx, 99)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryRepositoryUpdateProfile(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	user, err := repo.Create(ctx, "a@b.co", "Ada", "hash")
	require.NoError(t, err)

	male := bac.SexMale
	weight := 80.0
	updated, err := repo.UpdateProfile(ctx, user.ID, auth.ProfilePatch{BiologicalSex: &male, WeightKg: &weight})
	require.NoError(t, err)
	require.Equal(t, bac.SexMale, *updated.BiologicalSex)
	require.Nil(t, updated.ZipCode)

	// the stored copy must not alias the caller's pointer
	weight = 1
	stored, _, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 80.0, *stored.WeightKg)

	_, err = repo.UpdateProfile(ctx, 404, auth.ProfilePatch{})
	require.ErrorIs(t, err, auth.ErrUserNotFound)
}
