// Package ui writes the JSON bodies every endpoint answers with.
package ui

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the shape of every failed response. Redirect tells the client
// where to navigate instead of showing the error in place.
type ErrorBody struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
	Details  any    `json:"details,omitempty"`
}

// RedirectBody answers a request whose outcome is navigation.
type RedirectBody struct {
	Redirect string `json:"redirect"`
	Data     any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("render json failed", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

func ErrorDetails(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorBody{Error: msg, Details: details})
}

// ErrorRedirect reports an error that the client resolves by navigating.
func ErrorRedirect(w http.ResponseWriter, status int, msg, to string) {
	JSON(w, status, ErrorBody{Error: msg, Redirect: to})
}

func Redirect(w http.ResponseWriter, to string, data any) {
	JSON(w, http.StatusOK, RedirectBody{Redirect: to, Data: data})
}
