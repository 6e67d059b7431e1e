// internal/game/game.go
package game

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
)

// DefaultBiddingWindow is how long bidding stays open when the admin opens it.
const DefaultBiddingWindow = 30 * time.Second

// Options tunes a Game. Zero values fall back to defaults.
type Options struct {
	// BiddingWindow is added to the current time to compute biddingEndsAt on OpenBidding.
	BiddingWindow time.Duration

	// StrictTransitions rejects phase changes that skip the intended order of play.
	StrictTransitions bool

	Events EventPublisher
	Logger *log.Logger

	// Now and Intn are overridable for tests.
	Now  func() time.Time
	Intn func(n int) int
}

// Game runs the round and bidding state machine over a Store. It holds no game state of its
// own; every call re-reads the store.
type Game struct {
	store         Store
	events        EventPublisher
	logger        *log.Logger
	biddingWindow time.Duration
	strict        bool
	now           func() time.Time
	intn          func(n int) int
}

// NewGame builds a Game over the given store.
func NewGame(store Store, opts Options) *Game {
	g := &Game{
		store:         store,
		events:        opts.Events,
		logger:        opts.Logger,
		biddingWindow: opts.BiddingWindow,
		strict:        opts.StrictTransitions,
		now:           opts.Now,
		intn:          opts.Intn,
	}
	if g.events == nil {
		g.events = NopPublisher{}
	}
	if g.logger == nil {
		g.logger = log.StandardLogger()
	}
	if g.biddingWindow <= 0 {
		g.biddingWindow = DefaultBiddingWindow
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.intn == nil {
		g.intn = rand.IntN
	}
	return g
}

// Store exposes the underlying store, e.g. for seeding.
func (g *Game) Store() Store {
	return g.store
}

// logEvent hands a game event to the publisher without blocking the caller.
func (g *Game) logEvent(eventType string, round int, teamID uuid.UUID, payload map[string]interface{}) {
	if payload == nil {
		payload = make(map[string]interface{})
	}
	ev := models.GameEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Round:     round,
		TeamID:    teamID,
		Payload:   payload,
		Timestamp: g.now().UnixMilli(),
	}
	go func(ev models.GameEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := g.events.Publish(ctx, ev); err != nil {
			g.logger.WithError(err).WithField("event", ev.Type).Warn("failed to publish game event")
		}
	}(ev)
}
