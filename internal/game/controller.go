// internal/game/controller.go
package game

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
)

// GetState returns the live game state, initializing it on first use.
func (g *Game) GetState(ctx context.Context) (*models.GameState, error) {
	state, err := g.store.GetGameState(ctx)
	if err != nil {
		return nil, wrapStoreErr("get game state", err)
	}
	return state, nil
}

// UpdateState merges u into the live state. Fields not set in u are left alone; no
// cross-field checks are made beyond the optional transition table.
func (g *Game) UpdateState(ctx context.Context, u models.GameStateUpdate) (*models.GameState, error) {
	if err := validateUpdate(u); err != nil {
		return nil, err
	}
	state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		return u, g.checkTransition(cur, u)
	})
	if err != nil {
		return nil, wrapStoreErr("update game state", err)
	}
	g.logState(state, "game state updated")
	g.logEvent(EventStateUpdated, state.CurrentRound, uuid.Nil, statePayload(state))
	return state, nil
}

// ResetGame clears the game to the extent scope asks for.
func (g *Game) ResetGame(ctx context.Context, scope models.ResetScope) error {
	var round int
	switch scope {
	case models.ResetRound:
		// close bidding first so no bid lands after the delete
		state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
			return models.GameStateUpdate{
				Phase:            ptr(models.PhaseRoundStart),
				IsBiddingOpen:    ptr(false),
				BiddingEndsAt:    models.Null[time.Time](),
				ActiveTeamID:     models.Null[uuid.UUID](),
				WinningBidAmount: models.Some(0),
			}, nil
		})
		if err != nil {
			return wrapStoreErr("reset round", err)
		}
		round = state.CurrentRound
		if err := g.store.DeleteBids(ctx, round); err != nil {
			return wrapStoreErr("clear round bids", err)
		}

	case models.ResetBalance:
		if err := g.store.UpdateAllTeams(ctx, TeamUpdate{Balance: ptr(models.DefaultBalance)}); err != nil {
			return wrapStoreErr("reset balances", err)
		}

	case models.ResetFull:
		if err := g.store.DeleteAllBids(ctx); err != nil {
			return wrapStoreErr("clear bids", err)
		}
		err := g.store.UpdateAllTeams(ctx, TeamUpdate{
			Balance:  ptr(models.DefaultBalance),
			IsActive: ptr(true),
			HasSpun:  ptr(false),
		})
		if err != nil {
			return wrapStoreErr("reset teams", err)
		}
		if err := g.store.DeleteGameState(ctx); err != nil {
			return wrapStoreErr("delete game state", err)
		}
		state, err := g.store.GetGameState(ctx)
		if err != nil {
			return wrapStoreErr("recreate game state", err)
		}
		round = state.CurrentRound

	default:
		return invalidInput("unknown reset type %q", scope)
	}

	g.logger.WithFields(log.Fields{"scope": scope, "round": round}).Info("game reset")
	g.logEvent(EventGameReset, round, uuid.Nil, map[string]interface{}{"scope": string(scope)})
	return nil
}

// StartGame moves the game out of the lobby into the first round and loads its question.
func (g *Game) StartGame(ctx context.Context) (*models.GameState, error) {
	questions, err := g.store.ListQuestions(ctx)
	if err != nil {
		return nil, wrapStoreErr("list questions", err)
	}
	state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		u := models.GameStateUpdate{
			Phase:             ptr(models.PhaseRoundStart),
			IsBiddingOpen:     ptr(false),
			CurrentQuestionID: questionForRound(questions, cur.CurrentRound),
		}
		return u, g.checkTransition(cur, u)
	})
	if err != nil {
		return nil, wrapStoreErr("start game", err)
	}
	g.logState(state, "game started")
	g.logEvent(EventGameStarted, state.CurrentRound, uuid.Nil, statePayload(state))
	return state, nil
}

// OpenBidding opens the bidding window for the current round with a deadline of now plus the
// configured window.
func (g *Game) OpenBidding(ctx context.Context) (*models.GameState, error) {
	endsAt := g.now().Add(g.biddingWindow)
	state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		u := models.GameStateUpdate{
			Phase:         ptr(models.PhaseBidding),
			IsBiddingOpen: ptr(true),
			BiddingEndsAt: models.Some(endsAt),
		}
		return u, g.checkTransition(cur, u)
	})
	if err != nil {
		return nil, wrapStoreErr("open bidding", err)
	}
	g.logState(state, "bidding opened")
	g.logEvent(EventBiddingOpened, state.CurrentRound, uuid.Nil, map[string]interface{}{"endsAt": endsAt})
	return state, nil
}

// LockBidding stops accepting bids for the current round.
func (g *Game) LockBidding(ctx context.Context) (*models.GameState, error) {
	state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		u := models.GameStateUpdate{
			Phase:         ptr(models.PhaseBiddingLocked),
			IsBiddingOpen: ptr(false),
		}
		return u, g.checkTransition(cur, u)
	})
	if err != nil {
		return nil, wrapStoreErr("lock bidding", err)
	}
	g.logState(state, "bidding locked")
	g.logEvent(EventBiddingLocked, state.CurrentRound, uuid.Nil, nil)
	return state, nil
}

// RevealWinner hands the question to the winning bidder of the current round. Bidding is
// closed before the bids are read, so no bid can land after the winner is chosen. When the
// round has no bids the returned bid is nil and only the bidding window is affected.
func (g *Game) RevealWinner(ctx context.Context) (*models.GameState, *models.Bid, error) {
	state, err := g.GetState(ctx)
	if err != nil {
		return nil, nil, err
	}
	if state.IsBiddingOpen {
		state, err = g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
			return models.GameStateUpdate{IsBiddingOpen: ptr(false)}, nil
		})
		if err != nil {
			return nil, nil, wrapStoreErr("close bidding", err)
		}
		g.logState(state, "bidding closed for reveal")
	}

	winner, ok, err := g.ResolveWinner(ctx, state.CurrentRound)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		g.logger.WithField("round", state.CurrentRound).Info("reveal skipped, no bids")
		return state, nil, nil
	}

	state, err = g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		// reopened or advanced since the bids were read
		if cur.IsBiddingOpen || cur.CurrentRound != winner.RoundNumber {
			return models.GameStateUpdate{}, ErrStaleState
		}
		u := models.GameStateUpdate{
			Phase:            ptr(models.PhaseQuestion),
			IsBiddingOpen:    ptr(false),
			ActiveTeamID:     models.Some(winner.TeamID),
			WinningBidAmount: models.Some(winner.Amount),
		}
		return u, g.checkTransition(cur, u)
	})
	if err != nil {
		return nil, nil, wrapStoreErr("reveal winner", err)
	}
	g.logger.WithFields(log.Fields{
		"round":   state.CurrentRound,
		"team_id": winner.TeamID,
		"amount":  winner.Amount,
	}).Info("winner revealed")
	g.logEvent(EventWinnerRevealed, state.CurrentRound, winner.TeamID, map[string]interface{}{
		"bidId":  winner.ID,
		"amount": winner.Amount,
	})
	return state, &winner, nil
}

// NextRound advances to the next round, loading its question and clearing the previous
// round's winner.
func (g *Game) NextRound(ctx context.Context) (*models.GameState, error) {
	questions, err := g.store.ListQuestions(ctx)
	if err != nil {
		return nil, wrapStoreErr("list questions", err)
	}
	state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		next := cur.CurrentRound + 1
		u := models.GameStateUpdate{
			Phase:             ptr(models.PhaseRoundStart),
			CurrentRound:      ptr(next),
			CurrentQuestionID: questionForRound(questions, next),
			IsBiddingOpen:     ptr(false),
			BiddingEndsAt:     models.Null[time.Time](),
			ActiveTeamID:      models.Null[uuid.UUID](),
			WinningBidAmount:  models.Some(0),
		}
		return u, g.checkTransition(cur, u)
	})
	if err != nil {
		return nil, wrapStoreErr("next round", err)
	}
	g.logState(state, "round advanced")
	g.logEvent(EventRoundAdvanced, state.CurrentRound, uuid.Nil, statePayload(state))
	return state, nil
}

// EndGame closes bidding and moves to the final phase.
func (g *Game) EndGame(ctx context.Context) (*models.GameState, error) {
	state, err := g.store.UpdateGameState(ctx, func(cur models.GameState) (models.GameStateUpdate, error) {
		return models.GameStateUpdate{
			Phase:         ptr(models.PhaseEnded),
			IsBiddingOpen: ptr(false),
			BiddingEndsAt: models.Null[time.Time](),
		}, nil
	})
	if err != nil {
		return nil, wrapStoreErr("end game", err)
	}
	g.logState(state, "game ended")
	g.logEvent(EventGameEnded, state.CurrentRound, uuid.Nil, nil)
	return state, nil
}

func (g *Game) logState(state *models.GameState, msg string) {
	g.logger.WithFields(log.Fields{
		"phase":   state.Phase,
		"round":   state.CurrentRound,
		"bidding": state.IsBiddingOpen,
		"version": state.Version,
	}).Info(msg)
}

func statePayload(state *models.GameState) map[string]interface{} {
	payload := map[string]interface{}{
		"phase":         state.Phase,
		"isBiddingOpen": state.IsBiddingOpen,
		"version":       state.Version,
	}
	if state.ActiveTeamID != nil {
		payload["activeTeamId"] = state.ActiveTeamID.String()
	}
	if state.WinningBidAmount != nil {
		payload["winningBidAmount"] = *state.WinningBidAmount
	}
	return payload
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || KindOf(err) == KindNotFound
}
