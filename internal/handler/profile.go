package handler

import (
	"errors"
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	profile, err := h.profileService.ByUserID(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, profile)
}

// Update saves the editable fields. Document URLs only change through
// uploads and are kept as stored.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	var in model.UserProfile
	err := decodeJSON(w, r, &in)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := h.profileService.ByUserID(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	in.UserID = session.UserID
	in.Documents = current.Documents
	err = h.profileService.Upsert(r.Context(), &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, in)
}

// UploadDocument stores the first file of the request as document {kind}.
func (h *ProfileHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	kind := model.DocumentKind(r.PathValue("kind"))

	batch, err := parseFiles(w, r, validation.ConstraintsFor(validation.FileKindDocument))
	if err != nil {
		if errors.Is(err, errNoMultipart) {
			ui.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, err)
		return
	}
	defer batch.Close()

	url, err := h.profileService.UploadDocument(r.Context(), session.UserID, kind, batch.files[0])
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, map[string]string{"kind": string(kind), "url": url})
}
