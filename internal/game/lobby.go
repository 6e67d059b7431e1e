// internal/game/lobby.go
package game

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
)

// ListTeams returns every team, active or not.
func (g *Game) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := g.store.ListTeams(ctx)
	if err != nil {
		return nil, wrapStoreErr("list teams", err)
	}
	return teams, nil
}

// CreateTeam registers a new team with the default balance. Names are unique.
func (g *Game) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("team name is required")
	}
	if _, err := g.store.GetTeamByName(ctx, name); err == nil {
		return nil, ErrDuplicateTeam
	} else if !errors.Is(err, ErrRecordNotFound) {
		return nil, wrapStoreErr("lookup team", err)
	}

	team := models.NewTeam(name)
	if err := g.store.CreateTeam(ctx, &team); err != nil {
		return nil, wrapStoreErr("create team", err)
	}
	g.logger.WithFields(log.Fields{"team_id": team.ID, "name": team.Name}).Info("team created")
	g.logEvent(EventTeamCreated, 0, team.ID, map[string]interface{}{"name": team.Name})
	return &team, nil
}

// SpinTeam marks a team as drawn on the lobby wheel.
func (g *Game) SpinTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := g.updateTeam(ctx, id, TeamUpdate{HasSpun: ptr(true)})
	if err != nil {
		return nil, err
	}
	g.logger.WithFields(log.Fields{"team_id": team.ID, "name": team.Name}).Info("team spun")
	g.logEvent(EventTeamSpun, 0, team.ID, nil)
	return team, nil
}

// SpinRandom draws one active team that has not spun yet, uniformly at random, and marks it.
func (g *Game) SpinRandom(ctx context.Context) (*models.Team, error) {
	teams, err := g.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	var pool []models.Team
	for _, t := range teams {
		if t.IsActive && !t.HasSpun {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoTeamsLeft
	}
	return g.SpinTeam(ctx, pool[g.intn(len(pool))].ID)
}

// ResetTeamBalance restores one team's balance to the default.
func (g *Game) ResetTeamBalance(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := g.updateTeam(ctx, id, TeamUpdate{Balance: ptr(models.DefaultBalance)})
	if err != nil {
		return nil, err
	}
	g.logger.WithField("team_id", team.ID).Info("team balance reset")
	g.logEvent(EventTeamReset, 0, team.ID, map[string]interface{}{"balance": team.Balance})
	return team, nil
}

// DeactivateTeam removes a team from play without deleting its history.
func (g *Game) DeactivateTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := g.updateTeam(ctx, id, TeamUpdate{IsActive: ptr(false)})
	if err != nil {
		return nil, err
	}
	g.logger.WithField("team_id", team.ID).Info("team deactivated")
	g.logEvent(EventTeamDeactivated, 0, team.ID, nil)
	return team, nil
}

func (g *Game) updateTeam(ctx context.Context, id uuid.UUID, u TeamUpdate) (*models.Team, error) {
	team, err := g.store.UpdateTeam(ctx, id, u)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, wrapStoreErr("update team", err)
	}
	return team, nil
}
