package handlers

import (
	"context"
	"net/http"

	"github.com/jason-s-yu/bidquiz/internal/models"
)

type passwordBody struct {
	Password string `json:"password"`
}

// Login exchanges the admin secret for a token, set as the auth_token cookie and returned in the body.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req passwordBody
	if err := decodeBody(w, r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid login payload")
		return
	}
	token, err := a.gate.Login(req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if token != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     tokenCookie,
			Value:    token,
			HttpOnly: true,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// adminAction wraps a no-argument controller flow behind the admin check.
func (a *API) adminAction(fn func(ctx context.Context) (*models.GameState, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordBody
		if err := decodeBody(w, r, &req, true); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := a.authorize(r, req.Password); err != nil {
			a.fail(w, r, err)
			return
		}
		state, err := fn(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}
