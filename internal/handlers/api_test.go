// internal/handlers/api_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/auth"
	"github.com/jason-s-yu/bidquiz/internal/game"
	"github.com/jason-s-yu/bidquiz/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "admin123"

var fastParams = auth.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type testServer struct {
	t     *testing.T
	h     http.Handler
	api   *API
	game  *game.Game
	teams map[string]uuid.UUID
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := game.NewMemoryStore()
	_, _, err := game.Seed(context.Background(), store)
	require.NoError(t, err)
	g := game.NewGame(store, game.Options{Logger: logger})

	gate, err := auth.NewGate(authEnabled, secret, 0, fastParams)
	require.NoError(t, err)

	api := NewAPI(g, gate, logger)
	ts := &testServer{t: t, h: api.Routes(), api: api, game: g, teams: map[string]uuid.UUID{}}
	teams, err := g.ListTeams(context.Background())
	require.NoError(t, err)
	for _, tm := range teams {
		ts.teams[tm.Name] = tm.ID
	}
	return ts
}

func (ts *testServer) do(method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	ts.h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	return decode[errorBody](t, rr).Message
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListTeams(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	teams := decode[[]models.Team](t, rr)
	assert.Len(t, teams, 5)
	assert.Equal(t, "ALPHA", teams[0].Name)
}

func TestTeamRoutes(t *testing.T) {
	ts := newTestServer(t, true)
	alpha := ts.teams["ALPHA"].String()

	rr := ts.do(http.MethodPost, "/api/teams/"+alpha+"/spin", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[models.Team](t, rr).HasSpun)

	rr = ts.do(http.MethodDelete, "/api/teams/"+alpha, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[models.Team](t, rr).IsActive)

	rr = ts.do(http.MethodPost, "/api/teams/"+alpha+"/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.DefaultBalance, decode[models.Team](t, rr).Balance)

	rr = ts.do(http.MethodPost, "/api/teams/"+uuid.NewString()+"/spin", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = ts.do(http.MethodPost, "/api/teams/not-a-uuid/spin", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(http.MethodPost, "/api/teams/spin", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[models.Team](t, rr).HasSpun)
}

func TestCreateTeamRequiresAdmin(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(http.MethodPost, "/api/teams", map[string]string{"name": "ORBIT"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(http.MethodPost, "/api/teams", map[string]string{"name": "ORBIT", "password": secret})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.do(http.MethodPost, "/api/teams", map[string]string{"name": "ORBIT", "password": secret})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStateAuthAndValidation(t *testing.T) {
	ts := newTestServer(t, true)

	rr := ts.do(http.MethodPost, "/api/game/update", map[string]interface{}{"phase": "bidding", "password": "nope"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Invalid admin password", message(t, rr))

	rr = ts.do(http.MethodPost, "/api/game/update", map[string]interface{}{"phase": "halftime", "password": secret})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(http.MethodPost, "/api/game/update", map[string]interface{}{"currentRound": "two", "password": secret})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(http.MethodPost, "/api/game/update", map[string]interface{}{
		"phase":         "bidding",
		"isBiddingOpen": true,
		"password":      secret,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[models.GameState](t, rr)
	assert.Equal(t, models.PhaseBidding, state.Phase)
	assert.True(t, state.IsBiddingOpen)
	assert.Equal(t, 1, state.CurrentRound)
}

func TestUpdateStateExplicitNull(t *testing.T) {
	ts := newTestServer(t, true)
	nova := ts.teams["NOVA"]

	rr := ts.do(http.MethodPost, "/api/game/update", map[string]interface{}{"activeTeamId": nova, "password": secret})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, decode[models.GameState](t, rr).ActiveTeamID)

	rr = ts.do(http.MethodPost, "/api/game/update", map[string]interface{}{"activeTeamId": nil, "password": secret})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decode[models.GameState](t, rr).ActiveTeamID)
}

func TestResetGame(t *testing.T) {
	ts := newTestServer(t, true)

	rr := ts.do(http.MethodPost, "/api/game/reset", map[string]string{"type": "bogus", "password": secret})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(http.MethodPost, "/api/game/reset", map[string]string{"type": "full"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(http.MethodPost, "/api/game/reset", map[string]string{"type": "full", "password": secret})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, rr))
}

func TestLoginTokenAuthorizesActions(t *testing.T) {
	ts := newTestServer(t, true)

	rr := ts.do(http.MethodPost, "/api/admin/login", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(http.MethodPost, "/api/admin/login", map[string]string{"password": secret})
	require.Equal(t, http.StatusOK, rr.Code)
	token := decode[map[string]string](t, rr)["token"]
	require.NotEmpty(t, token)
	require.NotEmpty(t, rr.Result().Cookies())

	rr = ts.do(http.MethodPost, "/api/game/start", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(http.MethodPost, "/api/game/start", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.PhaseRoundStart, decode[models.GameState](t, rr).Phase)

	rr = ts.do(http.MethodPost, "/api/game/open-bidding", nil, "Cookie", tokenCookie+"="+token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[models.GameState](t, rr).IsBiddingOpen)
}

func TestAuthDisabled(t *testing.T) {
	ts := newTestServer(t, false)
	rr := ts.do(http.MethodPost, "/api/game/end", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.PhaseEnded, decode[models.GameState](t, rr).Phase)
}

func TestPlaceBidErrors(t *testing.T) {
	ts := newTestServer(t, true)
	alpha := ts.teams["ALPHA"]

	rr := ts.do(http.MethodPost, "/api/bids", map[string]interface{}{"teamId": alpha, "amount": 100})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Bidding closed", message(t, rr))

	rr = ts.do(http.MethodPost, "/api/game/open-bidding", map[string]string{"password": secret})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(http.MethodPost, "/api/bids", map[string]interface{}{"teamId": alpha, "amount": 20000})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Insufficient funds", message(t, rr))

	rr = ts.do(http.MethodPost, "/api/bids", map[string]interface{}{"teamId": uuid.New(), "amount": 100})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(http.MethodPost, "/api/bids", map[string]interface{}{"teamId": alpha, "amount": -3})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(http.MethodPost, "/api/bids", "not an object")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Drives a whole round over HTTP: two 700 bids tie, the earlier one wins and answers right.
func TestRoundOverHTTP(t *testing.T) {
	ts := newTestServer(t, true)
	nova, alpha := ts.teams["NOVA"], ts.teams["ALPHA"]
	admin := map[string]string{"password": secret}

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/game/start", admin).Code)
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/game/open-bidding", admin).Code)

	rr := ts.do(http.MethodPost, "/api/bids", map[string]interface{}{"teamId": nova, "amount": 700})
	require.Equal(t, http.StatusCreated, rr.Code)
	bid := decode[models.Bid](t, rr)
	assert.Equal(t, nova, bid.TeamID)
	assert.Equal(t, 700, bid.Amount)

	rr = ts.do(http.MethodPost, "/api/bids", map[string]interface{}{"teamId": alpha, "amount": 700})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.do(http.MethodGet, "/api/bids/current", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.Bid](t, rr), 2)

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/game/lock-bidding", admin).Code)
	rr = ts.do(http.MethodPost, "/api/game/reveal", admin)
	require.Equal(t, http.StatusOK, rr.Code)
	reveal := decode[revealResponse](t, rr)
	require.NotNil(t, reveal.Winner)
	assert.Equal(t, nova, reveal.Winner.TeamID)
	assert.Equal(t, models.PhaseQuestion, reveal.State.Phase)

	// teams do not see the key yet
	rr = ts.do(http.MethodGet, "/api/questions/current", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	q := decode[models.Question](t, rr)
	assert.Empty(t, q.CorrectOption)
	assert.NotEmpty(t, q.QuestionText)

	rr = ts.do(http.MethodGet, "/api/questions/current?view=admin", nil, "X-Admin-Password", secret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.OptionB, decode[models.Question](t, rr).CorrectOption)

	rr = ts.do(http.MethodPost, "/api/game/answer", map[string]interface{}{"teamId": alpha, "option": "B"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Not your turn or wrong phase", message(t, rr))

	rr = ts.do(http.MethodPost, "/api/game/answer", map[string]interface{}{"teamId": nova, "option": "B"})
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[models.AnswerResult](t, rr)
	assert.True(t, res.Correct)
	assert.Equal(t, 10700, res.NewBalance)
	assert.Equal(t, models.OptionB, res.CorrectAnswer)

	// revealed after scoring
	rr = ts.do(http.MethodGet, "/api/questions/current", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.OptionB, decode[models.Question](t, rr).CorrectOption)

	rr = ts.do(http.MethodGet, "/api/game/snapshot", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decode[game.Snapshot](t, rr)
	assert.Equal(t, models.PhaseScoring, snap.State.Phase)

	rr = ts.do(http.MethodPost, "/api/game/next-round", admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decode[models.GameState](t, rr).CurrentRound)
}

func TestRevealWithoutBids(t *testing.T) {
	ts := newTestServer(t, false)
	rr := ts.do(http.MethodPost, "/api/game/reveal", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	reveal := decode[revealResponse](t, rr)
	assert.Nil(t, reveal.Winner)
	assert.Equal(t, models.PhaseLobby, reveal.State.Phase)
}

func TestCurrentQuestionNotFound(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(http.MethodGet, "/api/questions/current", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "No active question", message(t, rr))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, statusFor(auth.ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrBiddingClosed))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrNonPositiveAmount))
	assert.Equal(t, http.StatusNotFound, statusFor(game.ErrTeamNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
