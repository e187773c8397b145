package handler

import (
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
)

type AdminHandler struct {
	propertyService *service.PropertyService
}

func NewAdminHandler(propertyService *service.PropertyService) *AdminHandler {
	return &AdminHandler{propertyService: propertyService}
}

// List returns every property, newest first, optionally of one status.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.PropertyStatus(r.URL.Query().Get("status"))

	properties, err := h.propertyService.ListAll(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}
	ui.JSON(w, http.StatusOK, map[string]any{"properties": properties})
}

func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	p, err := h.propertyService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, p)
}

func (h *AdminHandler) Activate(w http.ResponseWriter, r *http.Request) {
	p, err := h.propertyService.Activate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, p)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.propertyService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.Redirect(w, "/admin/properties", nil)
}
