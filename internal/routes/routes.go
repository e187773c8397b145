package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/app"
	"github.com/AyaBm214/PremiumConnect/internal/handler"
	"github.com/AyaBm214/PremiumConnect/internal/middleware"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
)

// SetupRoutes returns the API handler and a cleanup func for the resources
// the routes own.
func SetupRoutes(app *app.App) (http.Handler, func(), error) {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	dashboard := handler.NewDashboardHandler(app.PropertyService)
	wizard := handler.NewOnboardingHandler(app.OnboardingService)
	profile := handler.NewProfileHandler(app.ProfileService)
	admin := handler.NewAdminHandler(app.PropertyService)

	// Auth - 5 attempts per 15 minutes per IP
	limiter, err := middleware.NewRateLimiter(5, 15*time.Minute, 100_000)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ui.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", limiter.Limit(middleware.RequireGuest(auth.Signup)))
	mux.HandleFunc("POST /auth/login", limiter.Limit(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/session", auth.Session)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Dashboard
	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.Dashboard))
	mux.HandleFunc("GET /app/properties", middleware.RequireAuth(dashboard.Dashboard))
	mux.HandleFunc("POST /app/properties", middleware.RequireAuth(dashboard.CreateProperty))

	// Onboarding wizard
	mux.HandleFunc("GET /app/onboarding/{id}", middleware.RequireAuth(wizard.View))
	mux.HandleFunc("PUT /app/onboarding/{id}/step/{step}", middleware.RequireAuth(wizard.UpdateStep))
	mux.HandleFunc("POST /app/onboarding/{id}/advance", middleware.RequireAuth(wizard.Advance))
	mux.HandleFunc("POST /app/onboarding/{id}/retreat", middleware.RequireAuth(wizard.Retreat))
	mux.HandleFunc("POST /app/onboarding/{id}/save", middleware.RequireAuth(wizard.Save))
	mux.HandleFunc("POST /app/onboarding/{id}/complete", middleware.RequireAuth(wizard.Complete))
	mux.HandleFunc("POST /app/onboarding/{id}/media/{field}", middleware.RequireAuth(wizard.AttachMedia))

	// Profile
	mux.HandleFunc("GET /app/profile", middleware.RequireAuth(profile.Show))
	mux.HandleFunc("PUT /app/profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("POST /app/profile/documents/{kind}", middleware.RequireAuth(profile.UploadDocument))

	// ============================================================================
	// ADMIN ROUTES (/admin/*)
	// ============================================================================

	mux.HandleFunc("GET /admin/properties", middleware.RequireAdmin(admin.List))
	mux.HandleFunc("GET /admin/properties/{id}", middleware.RequireAdmin(admin.Show))
	mux.HandleFunc("POST /admin/properties/{id}/activate", middleware.RequireAdmin(admin.Activate))
	mux.HandleFunc("DELETE /admin/properties/{id}", middleware.RequireAdmin(admin.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		ui.Error(w, http.StatusNotFound, "not found")
	})

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Config(app.Cfg), // Config before CSRF, which reads the environment
		middleware.AuthMiddleware(app.AuthService, service.AuthCookieName),
		middleware.CSRFProtection, // Needs the session from AuthMiddleware
	)

	return h, limiter.Close, nil
}
