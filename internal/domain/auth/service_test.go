package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
	apperrors "github.com/yanqian/cocktail-bac/pkg/errors"
)

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "User@Example.com",
		Password: "pass1234",
		Nickname: "Mixer",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", view.Email)
	require.Equal(t, "Mixer", view.Nickname)
	require.NotZero(t, view.ID)
	require.Nil(t, view.BiologicalSex)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, view.Email, resp.User.Email)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, refreshed.Token)
	require.Equal(t, "Mixer", refreshed.User.Nickname)

	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "pass1234",
		Nickname: "NickOne",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "pass12345",
		Nickname: "NickTwo",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestService_LoginWrongPassword(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.co", Password: "pass1234", Nickname: "Ada"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "wrongpass"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))
}

func TestService_UpdateProfileAndLoad(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	view, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.co", Password: "pass1234", Nickname: "Ada"})
	require.NoError(t, err)

	profile, err := svc.LoadProfile(context.Background(), view.ID)
	require.NoError(t, err)
	require.False(t, profile.Complete())

	sex := "Female"
	weight := 62.5
	zip := "94107"
	updated, err := svc.UpdateProfile(context.Background(), view.ID, UpdateProfileRequest{
		BiologicalSex: &sex,
		WeightKg:      &weight,
		ZipCode:       &zip,
	})
	require.NoError(t, err)
	require.Equal(t, bac.SexFemale, *updated.BiologicalSex)
	require.Equal(t, 62.5, *updated.WeightKg)
	require.Equal(t, "94107", *updated.ZipCode)

	profile, err = svc.LoadProfile(context.Background(), view.ID)
	require.NoError(t, err)
	require.True(t, profile.Complete())
	require.Equal(t, bac.SexFemale, *profile.Sex)

	newWeight := 64.0
	updated, err = svc.UpdateProfile(context.Background(), view.ID, UpdateProfileRequest{WeightKg: &newWeight})
	require.NoError(t, err)
	require.Equal(t, bac.SexFemale, *updated.BiologicalSex, "untouched fields are preserved")
	require.Equal(t, 64.0, *updated.WeightKg)
}

func TestService_UpdateProfileValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	view, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.co", Password: "pass1234", Nickname: "Ada"})
	require.NoError(t, err)

	zero := 0.0
	_, err = svc.UpdateProfile(context.Background(), view.ID, UpdateProfileRequest{WeightKg: &zero})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Equal(t, "Weight must be positive", err.Error())

	sex := "other"
	_, err = svc.UpdateProfile(context.Background(), view.ID, UpdateProfileRequest{BiologicalSex: &sex})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	zip := "12ab5"
	_, err = svc.UpdateProfile(context.Background(), view.ID, UpdateProfileRequest{ZipCode: &zip})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	weight := 70.0
	_, err = svc.UpdateProfile(context.Background(), 999, UpdateProfileRequest{WeightKg: &weight})
	require.True(t, apperrors.IsCode(err, "user_not_found"))
}

func TestService_LoadProfileUnknownUser(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.LoadProfile(context.Background(), 42)
	require.True(t, apperrors.IsCode(err, "user_not_found"))
}

func newTestService(repo Repository) Service {
	return NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, repo, newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type memoryRepo struct {
	users map[int64]User
	seq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (m *memoryRepo) Create(_ context.Context, email, nickname, passwordHash string) (User, error) {
	m.seq++
	user := User{
		ID:           m.seq,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	user, ok := m.users[id]
	return user, ok, nil
}

func (m *memoryRepo) UpdateProfile(_ context.Context, id int64, patch ProfilePatch) (User, error) {
	user, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	if patch.BiologicalSex != nil {
		user.BiologicalSex = patch.BiologicalSex
	}
	if patch.WeightKg != nil {
		user.WeightKg = patch.WeightKg
	}
	if patch.ZipCode != nil {
		user.ZipCode = patch.ZipCode
	}
	m.users[id] = user
	return user, nil
}
