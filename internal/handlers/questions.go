package handlers

import (
	"net/http"

	"github.com/jason-s-yu/bidquiz/internal/game"
)

// CurrentQuestion serves the question in play. The answer key is withheld until scoring
// unless the caller asks for ?view=admin with admin credentials.
func (a *API) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	admin := false
	if r.URL.Query().Get("view") == "admin" {
		if err := a.authorize(r, r.Header.Get("X-Admin-Password")); err != nil {
			a.fail(w, r, err)
			return
		}
		admin = true
	}

	q, state, err := a.game.CurrentQuestion(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !admin && !game.AnswerRevealed(state.Phase) {
		redacted := q.Redacted()
		q = &redacted
	}
	writeJSON(w, http.StatusOK, q)
}
