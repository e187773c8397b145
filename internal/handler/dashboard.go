package handler

import (
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
)

type DashboardHandler struct {
	propertyService *service.PropertyService
}

func NewDashboardHandler(propertyService *service.PropertyService) *DashboardHandler {
	return &DashboardHandler{propertyService: propertyService}
}

type dashboardResponse struct {
	Properties []*model.Property `json:"properties"`
	Drafts     int               `json:"drafts"`
	InReview   int               `json:"inReview"`
	Active     int               `json:"active"`
}

// Dashboard lists the owner's properties with counts per status.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	properties, err := h.propertyService.ListForOwner(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := dashboardResponse{Properties: properties}
	if resp.Properties == nil {
		resp.Properties = []*model.Property{}
	}
	for _, p := range properties {
		switch p.Status {
		case model.PropertyStatusDraft:
			resp.Drafts++
		case model.PropertyStatusPendingReview:
			resp.InReview++
		case model.PropertyStatusActive:
			resp.Active++
		}
	}
	ui.JSON(w, http.StatusOK, resp)
}

// CreateProperty starts a draft and points the client at its wizard.
func (h *DashboardHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	p, err := h.propertyService.Create(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/app/onboarding/"+p.ID)
	ui.JSON(w, http.StatusCreated, ui.RedirectBody{Redirect: "/app/onboarding/" + p.ID, Data: p})
}
