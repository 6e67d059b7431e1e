// internal/database/teams.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/bidquiz/internal/game"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

const teamColumns = `id, name, balance, is_active, has_spun`

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Balance, &t.IsActive, &t.HasSpun); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	t, err := scanTeam(s.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id=$1`, id))
	return t, mapErr(err)
}

func (s *Store) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	t, err := scanTeam(s.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE name=$1`, name))
	return t, mapErr(err)
}

func (s *Store) CreateTeam(ctx context.Context, team *models.Team) error {
	if team.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate team id: %w", err)
		}
		team.ID = id
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO teams (id, name, balance, is_active, has_spun) VALUES ($1, $2, $3, $4, $5)`,
		team.ID, team.Name, team.Balance, team.IsActive, team.HasSpun,
	)
	return mapErr(err)
}

// UpdateTeam applies the non-nil fields of u. COALESCE keeps columns whose parameter is NULL.
func (s *Store) UpdateTeam(ctx context.Context, id uuid.UUID, u game.TeamUpdate) (*models.Team, error) {
	q := `
	UPDATE teams SET
		balance   = COALESCE($2, balance),
		is_active = COALESCE($3, is_active),
		has_spun  = COALESCE($4, has_spun)
	WHERE id=$1
	RETURNING ` + teamColumns
	t, err := scanTeam(s.pool.QueryRow(ctx, q, id, u.Balance, u.IsActive, u.HasSpun))
	return t, mapErr(err)
}

func (s *Store) UpdateAllTeams(ctx context.Context, u game.TeamUpdate) error {
	q := `
	UPDATE teams SET
		balance   = COALESCE($1, balance),
		is_active = COALESCE($2, is_active),
		has_spun  = COALESCE($3, has_spun)`
	if _, err := s.pool.Exec(ctx, q, u.Balance, u.IsActive, u.HasSpun); err != nil {
		return fmt.Errorf("update all teams: %w", err)
	}
	return nil
}
