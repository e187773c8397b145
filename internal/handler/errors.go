package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/middleware"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

// writeError maps a service error to its response. Unknown errors are logged
// and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		incomplete *onboarding.IncompleteStepError
		invalid    *validation.Error
		upload     *onboarding.UploadError
	)

	switch {
	case errors.Is(err, onboarding.ErrNotFound):
		ui.ErrorRedirect(w, http.StatusNotFound, err.Error(), middleware.DashboardPath)
	case errors.Is(err, onboarding.ErrForbidden):
		ui.ErrorRedirect(w, http.StatusForbidden, err.Error(), middleware.DashboardPath)
	case errors.As(err, &incomplete):
		ui.ErrorDetails(w, http.StatusUnprocessableEntity, err.Error(), map[string]any{
			"step":    incomplete.Step.String(),
			"missing": incomplete.Missing,
		})
	case errors.As(err, &invalid):
		ui.ErrorDetails(w, http.StatusUnprocessableEntity, "validation failed", invalid.Fields)
	case errors.As(err, &upload):
		ui.ErrorDetails(w, http.StatusBadGateway, err.Error(), upload.Failed)
	case errors.Is(err, onboarding.ErrMalformedUpdate),
		errors.Is(err, onboarding.ErrUnknownStep),
		errors.Is(err, onboarding.ErrLegacyStep),
		errors.Is(err, onboarding.ErrUnknownMediaField),
		errors.Is(err, onboarding.ErrNoFiles),
		errors.Is(err, service.ErrUnknownDocument):
		ui.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, onboarding.ErrNotEditable),
		errors.Is(err, onboarding.ErrAlreadySubmitted),
		errors.Is(err, onboarding.ErrNotFinalStep),
		errors.Is(err, service.ErrNotPendingReview),
		errors.Is(err, service.ErrEmailAlreadyExists):
		ui.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		ui.Error(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		ui.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
