package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/ctxkeys"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/ui"
)

const maxJSONBody = 1 << 20

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in credentials
	err := decodeJSON(w, r, &in)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Signup(r.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.startSession(w, r, user)
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	err := decodeJSON(w, r, &in)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.startSession(w, r, user)
}

// startSession sets the auth cookie and points the client at the home of
// the user's role.
func (h *authHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.authService.SetJWTCookie(w, token, expiry)

	slog.Info("user signed in", "user_id", user.ID, "role", user.Role)
	ui.Redirect(w, service.HomePath(user.Role), user)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	ui.Redirect(w, "/auth/login", nil)
}

// Session returns the signed-in identity, or null.
func (h *authHandler) Session(w http.ResponseWriter, r *http.Request) {
	ui.JSON(w, http.StatusOK, map[string]any{
		"session":   ctxkeys.Session(r.Context()),
		"csrfToken": ctxkeys.CSRFToken(r.Context()),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	return dec.Decode(v)
}
