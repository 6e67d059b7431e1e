package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jason-s-yu/bidquiz/internal/models"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventLog reads back the recorded game history.
type EventLog interface {
	ListEvents(ctx context.Context, limit int) ([]models.GameEvent, error)
}

// WithEvents enables GET /api/game/events backed by log.
func (a *API) WithEvents(log EventLog) *API {
	a.events = log
	return a
}

// ListEvents returns the most recent game events, newest first. Admin only, credentials
// come from the token or the X-Admin-Password header.
func (a *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	if err := a.authorize(r, r.Header.Get("X-Admin-Password")); err != nil {
		a.fail(w, r, err)
		return
	}
	if a.events == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Event history is not recorded")
		return
	}

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeMessage(w, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = min(n, maxEventLimit)
	}

	events, err := a.events.ListEvents(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if events == nil {
		events = []models.GameEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
