package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

func (a *API) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := a.game.GetState(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := a.game.GetSnapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type updateRequest struct {
	models.GameStateUpdate
	Password string `json:"password"`
}

func (a *API) UpdateState(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid update")
		return
	}
	if err := a.authorize(r, req.Password); err != nil {
		a.fail(w, r, err)
		return
	}
	state, err := a.game.UpdateState(r.Context(), req.GameStateUpdate)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type resetRequest struct {
	Type     string `json:"type"`
	Password string `json:"password"`
}

func (a *API) ResetGame(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid reset")
		return
	}
	if err := a.authorize(r, req.Password); err != nil {
		a.fail(w, r, err)
		return
	}
	scope, err := models.ParseResetScope(req.Type)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid reset")
		return
	}
	if err := a.game.ResetGame(r.Context(), scope); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type revealResponse struct {
	State  *models.GameState `json:"state"`
	Winner *models.Bid       `json:"winner"`
}

func (a *API) RevealWinner(w http.ResponseWriter, r *http.Request) {
	var req passwordBody
	if err := decodeBody(w, r, &req, true); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := a.authorize(r, req.Password); err != nil {
		a.fail(w, r, err)
		return
	}
	state, winner, err := a.game.RevealWinner(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revealResponse{State: state, Winner: winner})
}

type answerRequest struct {
	TeamID uuid.UUID `json:"teamId"`
	Option string    `json:"option"`
}

func (a *API) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid submission")
		return
	}
	res, err := a.game.SubmitAnswer(r.Context(), req.TeamID, req.Option)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
