package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/middleware"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

type OnboardingHandler struct {
	onboardingService *service.OnboardingService
}

func NewOnboardingHandler(onboardingService *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

type viewResponse struct {
	onboarding.Result
	View onboarding.StepView `json:"view"`
}

type mediaResponse struct {
	onboarding.Result
	Upload onboarding.UploadReport `json:"upload"`
}

// View returns the property with the render model of its current step.
func (h *OnboardingHandler) View(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	res, view, err := h.onboardingService.View(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, viewResponse{Result: res, View: view})
}

// UpdateStep replaces the slice of the document owned by {step}. The
// optional progress query parameter overrides the derived progress.
func (h *OnboardingHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var opts []onboarding.ApplyOption
	if p := r.URL.Query().Get("progress"); p != "" {
		progress, err := strconv.Atoi(p)
		if err != nil {
			ui.Error(w, http.StatusBadRequest, "progress must be an integer")
			return
		}
		opts = append(opts, onboarding.WithProgress(progress))
	}

	res, err := h.onboardingService.ApplyStep(r.Context(), r.PathValue("id"), session.UserID, r.PathValue("step"), raw, opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, res)
}

func (h *OnboardingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	res, err := h.onboardingService.Advance(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, res)
}

func (h *OnboardingHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	res, err := h.onboardingService.Retreat(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, res)
}

// Save retries the write of the current document.
func (h *OnboardingHandler) Save(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	res, err := h.onboardingService.Save(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, res)
}

// Complete submits the property and sends the owner back to the dashboard.
func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	res, err := h.onboardingService.Finish(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.Redirect(w, middleware.DashboardPath, res)
}

// AttachMedia uploads the files of a multipart request into {field}. Photo
// uploads name their zone with the zoneType and zoneIndex form values.
func (h *OnboardingHandler) AttachMedia(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	field := onboarding.MediaField(r.PathValue("field"))

	kind, err := field.Kind()
	if err != nil {
		writeError(w, r, err)
		return
	}

	batch, err := parseFiles(w, r, validation.ConstraintsFor(kind))
	if err != nil {
		if errors.Is(err, errNoMultipart) {
			ui.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, err)
		return
	}
	defer batch.Close()

	zone := model.ZoneRef{Type: model.ZoneType(r.FormValue("zoneType"))}
	if idx := r.FormValue("zoneIndex"); idx != "" {
		zone.Index, err = strconv.Atoi(idx)
		if err != nil {
			ui.Error(w, http.StatusBadRequest, "zoneIndex must be an integer")
			return
		}
	}

	res, report, err := h.onboardingService.AttachMedia(r.Context(), r.PathValue("id"), session.UserID, field, zone, batch.files)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if len(report.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	ui.JSON(w, status, mediaResponse{Result: res, Upload: report})
}
