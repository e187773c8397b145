package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	sessions map[string]*model.Session
	cleared  int
}

func (f *fakeSessions) CurrentSession(_ context.Context, token string) (*model.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return s, nil
}

func (f *fakeSessions) ClearJWTCookie(http.ResponseWriter) {
	f.cleared++
}

func sessionEcho(w http.ResponseWriter, r *http.Request) {
	s := ctxkeys.Session(r.Context())
	if s == nil {
		ui.JSON(w, http.StatusOK, map[string]string{"user": ""})
		return
	}
	ui.JSON(w, http.StatusOK, map[string]string{"user": s.UserID})
}

func withSession(s *model.Session, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s != nil {
			r = r.WithContext(ctxkeys.WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

var (
	clientSession = &model.Session{UserID: "u1", Role: model.RoleClient}
	adminSession  = &model.Session{UserID: "a1", Role: model.RoleAdmin}
)

func TestAuthMiddleware(t *testing.T) {
	sessions := &fakeSessions{sessions: map[string]*model.Session{"good": clientSession}}
	h := AuthMiddleware(sessions, "auth_token")(http.HandlerFunc(sessionEcho))

	tests := []struct {
		name    string
		cookie  string
		user    string
		cleared int
	}{
		{"no cookie", "", "", 0},
		{"valid token", "good", "u1", 0},
		{"forged token", "forged", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions.cleared = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.user, decodeBody[map[string]string](t, rec)["user"])
			assert.Equal(t, tt.cleared, sessions.cleared)
		})
	}
}

func TestAccessGuards(t *testing.T) {
	tests := []struct {
		name     string
		guard    func(http.HandlerFunc) http.HandlerFunc
		session  *model.Session
		status   int
		redirect string
	}{
		{"auth anonymous", RequireAuth, nil, http.StatusUnauthorized, LoginPath},
		{"auth client", RequireAuth, clientSession, http.StatusOK, ""},
		{"admin anonymous", RequireAdmin, nil, http.StatusUnauthorized, LoginPath},
		{"admin client", RequireAdmin, clientSession, http.StatusForbidden, DashboardPath},
		{"admin staff", RequireAdmin, adminSession, http.StatusOK, ""},
		{"guest anonymous", RequireGuest, nil, http.StatusOK, ""},
		{"guest client", RequireGuest, clientSession, http.StatusConflict, DashboardPath},
		{"guest staff", RequireGuest, adminSession, http.StatusConflict, "/admin/properties"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := withSession(tt.session, tt.guard(sessionEcho))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.redirect != "" {
				assert.Equal(t, tt.redirect, decodeBody[ui.ErrorBody](t, rec).Redirect)
			}
		})
	}
}
