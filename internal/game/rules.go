// internal/game/rules.go
package game

import (
	"fmt"
	"slices"

	"github.com/jason-s-yu/bidquiz/internal/models"
)

// transitions lists the phases each phase may move to in normal play. Moving back to the
// lobby, ending the game, and re-entering the same phase are always allowed.
var transitions = map[models.Phase][]models.Phase{
	models.PhaseLobby:         {models.PhaseRoundStart},
	models.PhaseRoundStart:    {models.PhaseBidding},
	models.PhaseBidding:       {models.PhaseBiddingLocked},
	models.PhaseBiddingLocked: {models.PhaseQuestion, models.PhaseBidding},
	models.PhaseQuestion:      {models.PhaseScoring},
	models.PhaseScoring:       {models.PhaseRoundStart, models.PhaseEnded},
	models.PhaseEnded:         {},
}

// CanTransition reports whether from -> to follows the intended order of play.
func CanTransition(from, to models.Phase) bool {
	if from == to || to == models.PhaseLobby || to == models.PhaseEnded {
		return true
	}
	return slices.Contains(transitions[from], to)
}

// checkTransition enforces the transition table when the game runs in strict mode.
func (g *Game) checkTransition(from models.GameState, u models.GameStateUpdate) error {
	if !g.strict || u.Phase == nil {
		return nil
	}
	if !CanTransition(from.Phase, *u.Phase) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from.Phase, *u.Phase)
	}
	return nil
}

// validateUpdate rejects updates that could never describe a coherent game state.
func validateUpdate(u models.GameStateUpdate) error {
	if u.Phase != nil {
		if _, err := models.ParsePhase(string(*u.Phase)); err != nil {
			return invalidInput("%v", err)
		}
	}
	if u.CurrentRound != nil && *u.CurrentRound < 1 {
		return invalidInput("currentRound must be at least 1, got %d", *u.CurrentRound)
	}
	if u.WinningBidAmount.Value != nil && *u.WinningBidAmount.Value < 0 {
		return invalidInput("winningBidAmount must not be negative, got %d", *u.WinningBidAmount.Value)
	}
	return nil
}
