// internal/game/helpers_test.go
package game

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every read so consecutive bids get distinct timestamps.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), step: time.Millisecond}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.GameEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.GameEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testEnv struct {
	game   *Game
	store  *MemoryStore
	clock  *fakeClock
	events *recordingPublisher
	teams  map[string]uuid.UUID
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestEnv returns a seeded game in the lobby.
func newTestEnv(t *testing.T, strict bool) *testEnv {
	t.Helper()
	env := &testEnv{
		store:  NewMemoryStore(),
		clock:  newFakeClock(),
		events: &recordingPublisher{},
		teams:  make(map[string]uuid.UUID),
	}
	env.store.now = env.clock.Now
	env.game = NewGame(env.store, Options{
		StrictTransitions: strict,
		Events:            env.events,
		Logger:            quietLogger(),
		Now:               env.clock.Now,
		Intn:              func(int) int { return 0 },
	})

	_, _, err := Seed(context.Background(), env.store)
	require.NoError(t, err)
	teams, err := env.store.ListTeams(context.Background())
	require.NoError(t, err)
	for _, tm := range teams {
		env.teams[tm.Name] = tm.ID
	}
	return env
}

// toQuestion starts the game, opens bidding and places the given bids, then reveals.
func (e *testEnv) toQuestion(t *testing.T, bids map[string]int, order ...string) *models.GameState {
	t.Helper()
	ctx := context.Background()
	_, err := e.game.StartGame(ctx)
	require.NoError(t, err)
	_, err = e.game.OpenBidding(ctx)
	require.NoError(t, err)
	for _, name := range order {
		_, err := e.game.PlaceBid(ctx, e.teams[name], bids[name])
		require.NoError(t, err)
	}
	_, err = e.game.LockBidding(ctx)
	require.NoError(t, err)
	state, _, err := e.game.RevealWinner(ctx)
	require.NoError(t, err)
	return state
}

func (e *testEnv) balance(t *testing.T, name string) int {
	t.Helper()
	tm, err := e.store.GetTeam(context.Background(), e.teams[name])
	require.NoError(t, err)
	return tm.Balance
}
