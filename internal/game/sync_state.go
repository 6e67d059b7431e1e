// internal/game/sync_state.go
package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

// Snapshot is everything a polling dashboard needs in one read.
type Snapshot struct {
	State        *models.GameState `json:"state"`
	Teams        []models.Team     `json:"teams"`
	Bids         []models.Bid      `json:"bids"`
	WinningBidID *uuid.UUID        `json:"winningBidId,omitempty"`
}

// GetSnapshot reads the state, teams and current-round bids.
func (g *Game) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	state, err := g.GetState(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := g.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	bids, err := g.BidsForRound(ctx, state.CurrentRound)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{State: state, Teams: teams, Bids: bids}
	if w, ok := WinningBid(bids); ok {
		snap.WinningBidID = &w.ID
	}
	return snap, nil
}
