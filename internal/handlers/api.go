// internal/handlers/api.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jason-s-yu/bidquiz/internal/auth"
	"github.com/jason-s-yu/bidquiz/internal/game"
	"github.com/jason-s-yu/bidquiz/internal/middleware"
	"github.com/sirupsen/logrus"
)

// API serves the game over JSON/HTTP.
type API struct {
	game   *game.Game
	gate   *auth.Gate
	events EventLog
	logger *logrus.Logger
}

func NewAPI(g *game.Game, gate *auth.Gate, logger *logrus.Logger) *API {
	return &API{game: g, gate: gate, logger: logger}
}

// Routes builds the router. Admin routes take credentials from the body password, the
// auth_token cookie or a Bearer header.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LogMiddleware(a.logger))
	r.Use(middleware.Recoverer(a.logger))

	r.Get("/healthz", Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", a.Login)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", a.ListTeams)
			r.Post("/", a.CreateTeam)
			r.Post("/spin", a.SpinRandom)
			r.Post("/{id}/spin", a.SpinTeam)
			r.Post("/{id}/reset", a.ResetTeam)
			r.Delete("/{id}", a.DeactivateTeam)
		})

		r.Route("/game", func(r chi.Router) {
			r.Get("/state", a.GetState)
			r.Get("/snapshot", a.Snapshot)
			r.Get("/events", a.ListEvents)
			r.Post("/update", a.UpdateState)
			r.Post("/reset", a.ResetGame)
			r.Post("/answer", a.SubmitAnswer)

			r.Post("/start", a.adminAction(a.game.StartGame))
			r.Post("/open-bidding", a.adminAction(a.game.OpenBidding))
			r.Post("/lock-bidding", a.adminAction(a.game.LockBidding))
			r.Post("/next-round", a.adminAction(a.game.NextRound))
			r.Post("/end", a.adminAction(a.game.EndGame))
			r.Post("/reveal", a.RevealWinner)
		})

		r.Get("/questions/current", a.CurrentQuestion)

		r.Route("/bids", func(r chi.Router) {
			r.Post("/", a.PlaceBid)
			r.Get("/current", a.CurrentBids)
		})
	})
	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail writes err as a JSON message, logging anything that is not the caller's fault.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	writeMessage(w, status, messageFor(err, status))
}

// authorize checks admin credentials from the body password or the request token.
func (a *API) authorize(r *http.Request, password string) error {
	return a.gate.Check(password, extractToken(r))
}
