// internal/database/game_state.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jason-s-yu/bidquiz/internal/game"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

const stateColumns = `id, current_round, current_question_id, phase, is_bidding_open,
	bidding_ends_at, active_team_id, winning_bid_amount, version, updated_at`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanState(row pgx.Row) (*models.GameState, error) {
	var st models.GameState
	var phase string
	err := row.Scan(&st.ID, &st.CurrentRound, &st.CurrentQuestionID, &phase, &st.IsBiddingOpen,
		&st.BiddingEndsAt, &st.ActiveTeamID, &st.WinningBidAmount, &st.Version, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	st.Phase = models.Phase(phase)
	return &st, nil
}

// ensureState inserts the default singleton if it is missing.
func ensureState(ctx context.Context, q querier) error {
	def := models.NewGameState()
	_, err := q.Exec(ctx, `
		INSERT INTO game_state (id, current_round, phase, is_bidding_open)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (id) DO NOTHING`,
		models.GameStateID, def.CurrentRound, string(def.Phase),
	)
	return err
}

// lockState returns the singleton with a row lock held until tx ends.
func lockState(ctx context.Context, tx pgx.Tx) (*models.GameState, error) {
	if err := ensureState(ctx, tx); err != nil {
		return nil, fmt.Errorf("ensure game state: %w", err)
	}
	st, err := scanState(tx.QueryRow(ctx, `SELECT `+stateColumns+` FROM game_state WHERE id=$1 FOR UPDATE`, models.GameStateID))
	if err != nil {
		return nil, fmt.Errorf("lock game state: %w", err)
	}
	return st, nil
}

// writeState stores cur after applying u. The version guard catches writers that skipped
// the row lock.
func writeState(ctx context.Context, tx pgx.Tx, cur *models.GameState, u models.GameStateUpdate) (*models.GameState, error) {
	next := *cur
	u.Apply(&next)
	st, err := scanState(tx.QueryRow(ctx, `
		UPDATE game_state SET
			current_round=$2, current_question_id=$3, phase=$4, is_bidding_open=$5,
			bidding_ends_at=$6, active_team_id=$7, winning_bid_amount=$8,
			version=version+1, updated_at=now()
		WHERE id=$1 AND version=$9
		RETURNING `+stateColumns,
		next.ID, next.CurrentRound, next.CurrentQuestionID, string(next.Phase), next.IsBiddingOpen,
		next.BiddingEndsAt, next.ActiveTeamID, next.WinningBidAmount, cur.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrStaleState
		}
		return nil, fmt.Errorf("write game state: %w", err)
	}
	return st, nil
}

func (s *Store) GetGameState(ctx context.Context) (*models.GameState, error) {
	if err := ensureState(ctx, s.pool); err != nil {
		return nil, fmt.Errorf("ensure game state: %w", err)
	}
	st, err := scanState(s.pool.QueryRow(ctx, `SELECT `+stateColumns+` FROM game_state WHERE id=$1`, models.GameStateID))
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	return st, nil
}

func (s *Store) UpdateGameState(ctx context.Context, fn game.StateFunc) (*models.GameState, error) {
	var out *models.GameState
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		cur, err := lockState(ctx, tx)
		if err != nil {
			return err
		}
		u, err := fn(*cur)
		if err != nil {
			return err
		}
		out, err = writeState(ctx, tx, cur, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteGameState(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM game_state WHERE id=$1`, models.GameStateID); err != nil {
		return fmt.Errorf("delete game state: %w", err)
	}
	return nil
}

// Mutate runs fn with the game state and team rows locked, then applies the balance delta,
// the optional bid and the state update in the same transaction.
func (s *Store) Mutate(ctx context.Context, teamID uuid.UUID, fn game.LockedFunc) (*models.Team, *models.GameState, error) {
	var (
		team  *models.Team
		state *models.GameState
	)
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		cur, err := lockState(ctx, tx)
		if err != nil {
			return err
		}
		locked, err := scanTeam(tx.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id=$1 FOR UPDATE`, teamID))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("lock team: %w", err)
			}
			locked = nil
		}

		m, err := fn(*cur, locked)
		if err != nil {
			return err
		}
		if locked == nil {
			return game.ErrRecordNotFound
		}

		team = locked
		if m.BalanceDelta != 0 {
			team, err = scanTeam(tx.QueryRow(ctx,
				`UPDATE teams SET balance = balance + $2 WHERE id=$1 RETURNING `+teamColumns,
				teamID, m.BalanceDelta))
			if err != nil {
				return fmt.Errorf("settle balance: %w", err)
			}
		}
		if m.Bid != nil {
			if err := insertBid(ctx, tx, m.Bid); err != nil {
				return err
			}
		}
		state = cur
		if !m.State.IsEmpty() {
			state, err = writeState(ctx, tx, cur, m.State)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return team, state, nil
}
