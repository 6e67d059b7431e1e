package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Phase is the stage the game is currently in.
type Phase string

const (
	PhaseLobby         Phase = "lobby"
	PhaseRoundStart    Phase = "round_start"
	PhaseBidding       Phase = "bidding"
	PhaseBiddingLocked Phase = "bidding_locked"
	PhaseQuestion      Phase = "question"
	PhaseScoring       Phase = "scoring"
	PhaseEnded         Phase = "ended"
)

// Phases lists every phase in intended order of play.
var Phases = []Phase{
	PhaseLobby,
	PhaseRoundStart,
	PhaseBidding,
	PhaseBiddingLocked,
	PhaseQuestion,
	PhaseScoring,
	PhaseEnded,
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	for _, known := range Phases {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePhase converts a raw string into a Phase.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown phase %q", s)
	}
	return p, nil
}

// GameStateID is the primary key of the one live game_state row.
const GameStateID = 1

// GameState is the singleton describing the live game.
type GameState struct {
	ID                int        `json:"id"`
	CurrentRound      int        `json:"currentRound"`
	CurrentQuestionID *uuid.UUID `json:"currentQuestionId"`
	Phase             Phase      `json:"phase"`
	IsBiddingOpen     bool       `json:"isBiddingOpen"`
	BiddingEndsAt     *time.Time `json:"biddingEndsAt"`
	ActiveTeamID      *uuid.UUID `json:"activeTeamId"`
	WinningBidAmount  *int       `json:"winningBidAmount"`

	// Version increments on every write and guards read-modify-write updates.
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewGameState returns the state a fresh game starts in.
func NewGameState() GameState {
	return GameState{
		ID:           GameStateID,
		CurrentRound: 1,
		Phase:        PhaseLobby,
	}
}

// WinningBid returns the stake riding on the current answer, 0 when unset.
func (s GameState) WinningBid() int {
	if s.WinningBidAmount == nil {
		return 0
	}
	return *s.WinningBidAmount
}

// BiddingExpired reports whether a deadline is set and now is past it.
func (s GameState) BiddingExpired(now time.Time) bool {
	return s.BiddingEndsAt != nil && now.After(*s.BiddingEndsAt)
}

// IsActiveTeam reports whether teamID currently holds the right to answer.
func (s GameState) IsActiveTeam(teamID uuid.UUID) bool {
	return s.ActiveTeamID != nil && *s.ActiveTeamID == teamID
}

// ResetScope selects how much of the game a reset clears.
type ResetScope string

const (
	ResetRound   ResetScope = "round"
	ResetBalance ResetScope = "balance"
	ResetFull    ResetScope = "full"
)

// ParseResetScope validates a reset type supplied by the admin console.
func ParseResetScope(s string) (ResetScope, error) {
	switch ResetScope(s) {
	case ResetRound, ResetBalance, ResetFull:
		return ResetScope(s), nil
	}
	return "", fmt.Errorf("unknown reset type %q", s)
}

// AnswerResult is returned to the answering team after settlement.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	NewBalance    int    `json:"newBalance"`
	CorrectAnswer Option `json:"correctAnswer"`
}
