// internal/database/bids.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

func insertBid(ctx context.Context, q querier, bid *models.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	_, err := q.Exec(ctx,
		`INSERT INTO bids (id, team_id, round_number, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
		bid.ID, bid.TeamID, bid.RoundNumber, bid.Amount, bid.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (s *Store) InsertBid(ctx context.Context, bid *models.Bid) error {
	return insertBid(ctx, s.pool, bid)
}

// ListBids orders by amount desc, then created_at; seq breaks identical timestamps by insertion.
func (s *Store) ListBids(ctx context.Context, round int) ([]models.Bid, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, team_id, round_number, amount, created_at
		FROM bids
		WHERE round_number=$1
		ORDER BY amount DESC, created_at ASC, seq ASC`, round)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	bids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Bid, error) {
		var b models.Bid
		err := row.Scan(&b.ID, &b.TeamID, &b.RoundNumber, &b.Amount, &b.CreatedAt)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan bids: %w", err)
	}
	return bids, nil
}

func (s *Store) DeleteBids(ctx context.Context, round int) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM bids WHERE round_number=$1`, round); err != nil {
		return fmt.Errorf("delete round bids: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllBids(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM bids`); err != nil {
		return fmt.Errorf("delete bids: %w", err)
	}
	return nil
}
