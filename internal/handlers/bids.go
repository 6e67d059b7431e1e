package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

type bidRequest struct {
	TeamID uuid.UUID `json:"teamId"`
	Amount int       `json:"amount"`
}

func (a *API) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req bidRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid bid")
		return
	}
	bid, err := a.game.PlaceBid(r.Context(), req.TeamID, req.Amount)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

func (a *API) CurrentBids(w http.ResponseWriter, r *http.Request) {
	bids, err := a.game.CurrentBids(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	writeJSON(w, http.StatusOK, bids)
}
