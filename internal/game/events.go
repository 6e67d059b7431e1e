// internal/game/events.go
package game

import (
	"context"

	"github.com/jason-s-yu/bidquiz/internal/models"
)

// Event types recorded for every state change.
const (
	EventStateUpdated    = "state_updated"
	EventGameReset       = "game_reset"
	EventGameStarted     = "game_started"
	EventGameEnded       = "game_ended"
	EventBiddingOpened   = "bidding_opened"
	EventBiddingLocked   = "bidding_locked"
	EventBidPlaced       = "bid_placed"
	EventWinnerRevealed  = "winner_revealed"
	EventAnswerSubmitted = "answer_submitted"
	EventRoundAdvanced   = "round_advanced"
	EventTeamCreated     = "team_created"
	EventTeamSpun        = "team_spun"
	EventTeamReset       = "team_balance_reset"
	EventTeamDeactivated = "team_deactivated"
)

// EventPublisher ships game events somewhere durable (see cache.EventQueue).
type EventPublisher interface {
	Publish(ctx context.Context, ev models.GameEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.GameEvent) error { return nil }
