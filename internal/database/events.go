// internal/database/events.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

// InsertEvents writes a batch of game events in one transaction. Replayed events are ignored.
func (s *Store) InsertEvents(ctx context.Context, events []models.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, ev := range events {
			var teamID *uuid.UUID
			if ev.TeamID != uuid.Nil {
				id := ev.TeamID
				teamID = &id
			}
			payload := ev.Payload
			if payload == nil {
				payload = map[string]interface{}{}
			}
			batch.Queue(`
				INSERT INTO game_events (id, event_type, round, team_id, payload, occurred_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO NOTHING`,
				ev.ID, ev.Type, ev.Round, teamID, payload, time.UnixMilli(ev.Timestamp),
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("insert %d events: %w", len(events), err)
	}
	return nil
}

// ListEvents returns up to limit most recent events, newest first.
func (s *Store) ListEvents(ctx context.Context, limit int) ([]models.GameEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, event_type, round, team_id, payload, occurred_at
		FROM game_events
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.GameEvent, error) {
		var (
			ev     models.GameEvent
			teamID *uuid.UUID
			at     time.Time
		)
		if err := row.Scan(&ev.ID, &ev.Type, &ev.Round, &teamID, &ev.Payload, &at); err != nil {
			return ev, err
		}
		if teamID != nil {
			ev.TeamID = *teamID
		}
		ev.Timestamp = at.UnixMilli()
		return ev, nil
	})
}
