package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/auth"
	"github.com/jason-s-yu/bidquiz/internal/game"
)

const tokenCookie = "auth_token"

// extractToken returns the admin token from the auth_token cookie or a Bearer header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(tokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body of at most maxBodyBytes into v. An empty body leaves v
// untouched when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	return err
}

func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// statusFor maps an error onto the HTTP status the API reports it with.
func statusFor(err error) int {
	if errors.Is(err, auth.ErrUnauthorized) {
		return http.StatusForbidden
	}
	switch game.KindOf(err) {
	case game.KindValidation, game.KindRule:
		return http.StatusBadRequest
	case game.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// messageFor capitalizes game error messages for display; internal errors are not exposed.
func messageFor(err error, status int) string {
	switch {
	case status == http.StatusForbidden:
		return "Invalid admin password"
	case status == http.StatusInternalServerError:
		return "Internal server error"
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
