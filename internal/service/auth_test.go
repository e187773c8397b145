package service

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse-battery"

func newAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(newTestDB(t))
	email := NewEmailService("", "noreply@example.com", "http://localhost:8080", "PremiumConnect", true)
	return NewAuthService(users, email, "test-secret", false, time.Hour), users
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	user, err := auth.Signup(ctx, "  Owner@Example.com ", testPassword, " Claire ")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, "Claire", user.Name)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.NotEqual(t, testPassword, user.PasswordHash)

	_, err = auth.Signup(ctx, "owner@example.com", testPassword, "Claire")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	got, err := auth.Login(ctx, "OWNER@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = auth.Login(ctx, "owner@example.com", "wrong-password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "nobody@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	tests := []struct {
		name, email, password, fullName, field string
	}{
		{"bad email", "not-an-email", testPassword, "Claire", "email"},
		{"missing name", "a@example.com", testPassword, "  ", "name"},
		{"short password", "a@example.com", "short", "Claire", "password"},
		{"common password", "a@example.com", "mypassword-is-long", "Claire", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Signup(ctx, tt.email, tt.password, tt.fullName)
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestCurrentSessionReloadsUser(t *testing.T) {
	ctx := context.Background()
	auth, users := newAuthService(t)
	user, err := auth.Signup(ctx, "owner@example.com", testPassword, "Claire")
	require.NoError(t, err)

	token, expiry, err := auth.GenerateJWT(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	require.NoError(t, users.UpdateRole(ctx, user.ID, model.RoleAdmin))

	session, err := auth.CurrentSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.IsAdmin())
	assert.Equal(t, expiry.Unix(), session.ExpiresAt.Unix())

	_, err = auth.CurrentSession(ctx, token+"x")
	assert.Error(t, err)

	other := NewAuthService(users, nil, "another-secret", false, time.Hour)
	_, err = other.CurrentSession(ctx, token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	auth, _ := newAuthService(t)
	auth.now = fixedClock(time.Now().Add(-2 * time.Hour))

	token, _, err := auth.GenerateJWT(&model.User{ID: "u1", Role: model.RoleClient})
	require.NoError(t, err)

	_, err = auth.VerifyJWT(token)
	assert.Error(t, err)
}

func TestProvisionAdmin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	admin, err := auth.ProvisionAdmin(ctx, "Staff@Example.com", testPassword, "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, "Admin", admin.Name)

	client, err := auth.Signup(ctx, "owner@example.com", testPassword, "Claire")
	require.NoError(t, err)
	promoted, err := auth.ProvisionAdmin(ctx, "owner@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, client.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())
}

func TestJWTCookies(t *testing.T) {
	auth, _ := newAuthService(t)

	rec := httptest.NewRecorder()
	auth.SetJWTCookie(rec, "token", time.Now().Add(time.Hour))
	auth.ClearJWTCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, AuthCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "", cookies[1].Value)
	assert.Equal(t, "/admin/properties", HomePath(model.RoleAdmin))
	assert.Equal(t, "/app/dashboard", HomePath(model.RoleClient))
}
