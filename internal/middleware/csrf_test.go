package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFProtection(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	issue := httptest.NewRecorder()
	CSRFProtection(next).ServeHTTP(issue, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, issue.Code)
	cookies := issue.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0]
	assert.Equal(t, CSRFCookieName, token.Name)
	assert.False(t, token.HttpOnly)
	assert.Equal(t, token.Value, seen)

	tests := []struct {
		name    string
		session *model.Session
		header  string
		status  int
	}{
		{"anonymous post", nil, "", http.StatusNoContent},
		{"session without header", &model.Session{UserID: "u1"}, "", http.StatusForbidden},
		{"session wrong header", &model.Session{UserID: "u1"}, "nope", http.StatusForbidden},
		{"session matching header", &model.Session{UserID: "u1"}, token.Value, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/app/properties", nil)
			req.AddCookie(token)
			if tt.header != "" {
				req.Header.Set(CSRFHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			withSession(tt.session, CSRFProtection(next)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}
