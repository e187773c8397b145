package middleware

import (
	"context"
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
)

const (
	LoginPath     = "/auth/login"
	DashboardPath = "/app/dashboard"
)

// SessionResolver turns an auth cookie value into a session.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
	ClearJWTCookie(w http.ResponseWriter)
}

// AuthMiddleware attaches the session of a valid auth cookie to the context.
// Requests without one continue anonymously.
func AuthMiddleware(sessions SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.CurrentSession(r.Context(), cookie.Value)
			if err != nil {
				// Expired, forged or belonging to a deleted user.
				sessions.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with a redirect to the login page.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Session(r.Context()) == nil {
			ui.ErrorRedirect(w, http.StatusUnauthorized, "authentication required", LoginPath)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAdmin lets only staff through. Signed-in clients are sent back to
// their dashboard.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !ctxkeys.Session(r.Context()).IsAdmin() {
			ui.ErrorRedirect(w, http.StatusForbidden, "admin access required", DashboardPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGuest ensures the user is not authenticated
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session := ctxkeys.Session(r.Context()); session != nil {
			to := DashboardPath
			if session.IsAdmin() {
				to = "/admin/properties"
			}
			ui.ErrorRedirect(w, http.StatusConflict, "already signed in", to)
			return
		}
		next.ServeHTTP(w, r)
	}
}
