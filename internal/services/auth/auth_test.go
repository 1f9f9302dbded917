package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/password"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	"github.com/magabrotheeeer/fashion-admin/internal/storage/memory"
)

type CounterMock struct{ mock.Mock }

func (m *CounterMock) IncLoginAttempts(success bool) {
	m.Called(success)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var fixedNow = time.Date(2024, 12, 21, 9, 0, 0, 0, time.UTC)

const (
	adminUser = "admin"
	adminPass = "correct-horse"
)

type fixture struct {
	svc     *Service
	store   *memory.Store
	counter *CounterMock
	tokens  *jwt.MakerImpl
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewDefault()
	counter := &CounterMock{}
	counter.On("IncLoginAttempts", mock.Anything).Maybe()
	tokens := jwt.NewJWTMaker("test-secret", 15*time.Minute, time.Hour)
	svc := NewService(store, tokens, counter, clock.Fixed(fixedNow), newNoopLogger())
	require.NoError(t, svc.Bootstrap(context.Background(), adminUser, adminPass, "admin@fashionapp.com", "Fashion App Admin"))
	return fixture{svc: svc, store: store, counter: counter, tokens: tokens}
}

func (f fixture) login(t *testing.T) LoginResult {
	t.Helper()
	res, err := f.svc.Login(context.Background(), LoginInput{Username: adminUser, Password: adminPass, IPAddress: "10.0.0.1", UserAgent: "curl"})
	require.NoError(t, err)
	return res
}

func TestService_Bootstrap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.store.AdminByUsername(ctx, adminUser)
	require.NoError(t, err)
	assert.True(t, admin.SuperAdmin)
	assert.Equal(t, "admin@fashionapp.com", admin.Email)
	assert.NoError(t, password.CompareHash(admin.PasswordHash, adminPass))

	// a second bootstrap keeps the existing account
	require.NoError(t, f.svc.Bootstrap(ctx, adminUser, "another-password", "x@y.z", "X"))
	again, err := f.store.AdminByUsername(ctx, adminUser)
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, again.PasswordHash)

	assert.Error(t, f.svc.Bootstrap(ctx, "ops", "short", "", ""))
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: adminUser, password: adminPass},
		{name: "wrong password", username: adminUser, password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: adminPass, wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			res, err := f.svc.Login(ctx, LoginInput{Username: tt.username, Password: tt.password, IPAddress: "10.0.0.1", UserAgent: "curl"})

			attempts, aerr := f.store.LoginAttempts(ctx, 0)
			require.NoError(t, aerr)
			require.Len(t, attempts, 1)
			assert.Equal(t, tt.username, attempts[0].Username)
			assert.Equal(t, tt.wantErr == nil, attempts[0].Success)
			f.counter.AssertCalled(t, "IncLoginAttempts", tt.wantErr == nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "10.0.0.1", res.User.LastLoginIP)

			access, err := f.tokens.ParseToken(res.AccessToken, jwt.Access)
			require.NoError(t, err)
			assert.Equal(t, adminUser, access.Username)
			assert.Equal(t, roleSuperAdmin, access.Role)

			sessions, err := f.svc.Sessions(ctx, adminUser)
			require.NoError(t, err)
			require.Len(t, sessions, 1)
			assert.Equal(t, "curl", sessions[0].UserAgent)
			assert.True(t, sessions[0].Active)
		})
	}
}

func TestService_Refresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.login(t)

	access, err := f.svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	claims, err := f.svc.Validate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, adminUser, claims.Username)

	_, err = f.svc.Refresh(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	orphan, _, err := f.tokens.GenerateToken(adminUser, roleSuperAdmin, jwt.Refresh)
	require.NoError(t, err)
	_, err = f.svc.Refresh(ctx, orphan)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestService_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.login(t)

	err := f.svc.Logout(ctx, "ops", res.RefreshToken)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err, "a refused logout leaves the session open")

	require.NoError(t, f.svc.Logout(ctx, adminUser, res.RefreshToken))

	_, err = f.svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, f.svc.Logout(ctx, adminUser, res.RefreshToken), ErrSessionClosed)

	sessions, err := f.svc.Sessions(ctx, adminUser)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestService_Validate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.login(t)

	_, err := f.svc.Validate(ctx, res.AccessToken)
	assert.NoError(t, err)

	_, err = f.svc.Validate(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, jwt.ErrWrongTokenType)

	_, err = f.svc.Validate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.svc.UpdateProfile(ctx, adminUser, "ops@fashionapp.com", " ")
	require.NoError(t, err)
	assert.Equal(t, "ops@fashionapp.com", admin.Email)
	assert.Equal(t, "Fashion App Admin", admin.Name)

	profile, err := f.svc.Profile(ctx, adminUser)
	require.NoError(t, err)
	assert.Equal(t, admin, profile)

	_, err = f.svc.UpdateProfile(ctx, "ghost", "a@b.c", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_ChangePassword(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		wantMsg string
	}{
		{name: "valid", old: adminPass, new: "brand-new-pass"},
		{name: "too short", old: adminPass, new: "short", wantMsg: "New password must be at least 8 characters"},
		{name: "wrong current", old: "wrong", new: "brand-new-pass", wantMsg: "Current password is incorrect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			err := f.svc.ChangePassword(ctx, adminUser, tt.old, tt.new)
			if tt.wantMsg != "" {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				assert.EqualError(t, err, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			_, err = f.svc.Login(ctx, LoginInput{Username: adminUser, Password: tt.new})
			assert.NoError(t, err)
			_, err = f.svc.Login(ctx, LoginInput{Username: adminUser, Password: tt.old})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestService_TerminateSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.login(t)
	f.login(t)

	sessions, err := f.svc.Sessions(ctx, adminUser)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// newest first, so the second entry is the first login
	require.NoError(t, f.svc.TerminateSession(ctx, adminUser, sessions[1].ID))
	_, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionClosed)

	err = f.svc.TerminateSession(ctx, adminUser, sessions[1].ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.EqualError(t, err, "Session not found")

	err = f.svc.TerminateSession(ctx, "someone-else", sessions[0].ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_LoginAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Login(ctx, LoginInput{Username: adminUser, Password: "bad"})
	f.login(t)

	attempts, err := f.svc.LoginAttempts(ctx, adminUser, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Success)
	assert.False(t, attempts[1].Success)

	attempts, err = f.svc.LoginAttempts(ctx, adminUser, 1)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	_, err = f.store.SaveAdmin(ctx, models.AdminUser{Username: "helper"})
	require.NoError(t, err)
	_, err = f.svc.LoginAttempts(ctx, "helper", 10)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
