// internal/game/bids.go
package game

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
)

// PlaceBid records a sealed bid for the current round. Checks run in a fixed order and the
// first failure is returned: bidding open, deadline not passed, team exists and is active,
// amount positive, amount within balance. Balances are not touched.
func (g *Game) PlaceBid(ctx context.Context, teamID uuid.UUID, amount int) (*models.Bid, error) {
	var placed *models.Bid
	_, _, err := g.store.Mutate(ctx, teamID, func(state models.GameState, team *models.Team) (Mutation, error) {
		now := g.now()
		switch {
		case !state.IsBiddingOpen:
			return Mutation{}, ErrBiddingClosed
		case state.BiddingExpired(now):
			return Mutation{}, ErrBiddingExpired
		case team == nil:
			return Mutation{}, ErrInvalidTeam
		case !team.IsActive:
			return Mutation{}, ErrTeamInactive
		case amount <= 0:
			return Mutation{}, ErrNonPositiveAmount
		case amount > team.Balance:
			return Mutation{}, ErrInsufficientFunds
		}
		placed = &models.Bid{
			ID:          uuid.New(),
			TeamID:      team.ID,
			RoundNumber: state.CurrentRound,
			Amount:      amount,
			CreatedAt:   now,
		}
		return Mutation{Bid: placed}, nil
	})
	if err != nil {
		g.logger.WithFields(log.Fields{
			"team_id": teamID,
			"amount":  amount,
		}).WithError(err).Info("bid rejected")
		return nil, wrapStoreErr("place bid", err)
	}

	g.logger.WithFields(log.Fields{
		"team_id": placed.TeamID,
		"round":   placed.RoundNumber,
		"amount":  placed.Amount,
	}).Info("bid placed")
	g.logEvent(EventBidPlaced, placed.RoundNumber, placed.TeamID, map[string]interface{}{
		"bidId":  placed.ID,
		"amount": placed.Amount,
	})
	return placed, nil
}

// BidsForRound lists a round's bids, highest amount first and earliest first among equals.
func (g *Game) BidsForRound(ctx context.Context, round int) ([]models.Bid, error) {
	bids, err := g.store.ListBids(ctx, round)
	if err != nil {
		return nil, wrapStoreErr("list bids", err)
	}
	SortBids(bids)
	return bids, nil
}

// CurrentBids lists the bids of the round in progress.
func (g *Game) CurrentBids(ctx context.Context) ([]models.Bid, error) {
	state, err := g.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return g.BidsForRound(ctx, state.CurrentRound)
}

// ResolveWinner returns the winning bid of a round; ok is false when nobody bid.
func (g *Game) ResolveWinner(ctx context.Context, round int) (winner models.Bid, ok bool, err error) {
	bids, err := g.BidsForRound(ctx, round)
	if err != nil {
		return models.Bid{}, false, err
	}
	winner, ok = WinningBid(bids)
	return winner, ok, nil
}

// compareBids orders by amount descending, then creation time ascending.
func compareBids(a, b models.Bid) int {
	if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
		return c
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// SortBids sorts in place into display order. The sort is stable, so bids with identical
// amount and timestamp keep their submission order.
func SortBids(bids []models.Bid) {
	slices.SortStableFunc(bids, compareBids)
}

// WinningBid picks the highest amount, earliest submission among equals. Input order only
// matters for exact ties, where the first one wins.
func WinningBid(bids []models.Bid) (models.Bid, bool) {
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	best := bids[0]
	for _, b := range bids[1:] {
		if compareBids(b, best) < 0 {
			best = b
		}
	}
	return best, true
}
