package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

func (a *API) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := a.game.ListTeams(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	writeJSON(w, http.StatusOK, teams)
}

type createTeamRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a *API) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid team payload")
		return
	}
	if err := a.authorize(r, req.Password); err != nil {
		a.fail(w, r, err)
		return
	}
	team, err := a.game.CreateTeam(r.Context(), req.Name)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (a *API) SpinRandom(w http.ResponseWriter, r *http.Request) {
	team, err := a.game.SpinRandom(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (a *API) SpinTeam(w http.ResponseWriter, r *http.Request) {
	a.teamOp(w, r, a.game.SpinTeam)
}

func (a *API) ResetTeam(w http.ResponseWriter, r *http.Request) {
	a.teamOp(w, r, a.game.ResetTeamBalance)
}

func (a *API) DeactivateTeam(w http.ResponseWriter, r *http.Request) {
	a.teamOp(w, r, a.game.DeactivateTeam)
}

func (a *API) teamOp(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*models.Team, error)) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Team not found")
		return
	}
	team, err := op(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}
