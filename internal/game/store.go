// internal/game/store.go
package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

// TeamUpdate is a partial update of a team row. Nil fields are left unchanged.
type TeamUpdate struct {
	Balance  *int
	IsActive *bool
	HasSpun  *bool
}

func (u TeamUpdate) apply(t *models.Team) {
	if u.Balance != nil {
		t.Balance = *u.Balance
	}
	if u.IsActive != nil {
		t.IsActive = *u.IsActive
	}
	if u.HasSpun != nil {
		t.HasSpun = *u.HasSpun
	}
}

// StateFunc computes an update from the current game state. It runs while the store holds
// the state row, so the read and the write it produces are atomic.
type StateFunc func(current models.GameState) (models.GameStateUpdate, error)

// Mutation is what a LockedFunc asks the store to apply.
type Mutation struct {
	BalanceDelta int
	State        models.GameStateUpdate
	Bid          *models.Bid // inserted when non-nil
}

// LockedFunc inspects the game state and a team (nil when the team does not exist) while both
// are locked and returns the mutation to apply. Returning an error aborts without writing.
type LockedFunc func(state models.GameState, team *models.Team) (Mutation, error)

// Store is the record store the game runs against. Every method is a bounded read or
// read-modify-write; implementations must make UpdateGameState and Mutate atomic.
type Store interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	CreateTeam(ctx context.Context, team *models.Team) error
	UpdateTeam(ctx context.Context, id uuid.UUID, u TeamUpdate) (*models.Team, error)
	UpdateAllTeams(ctx context.Context, u TeamUpdate) error

	ListQuestions(ctx context.Context) ([]models.Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
	CreateQuestion(ctx context.Context, q *models.Question) error

	// GetGameState returns the singleton, creating it with defaults when missing.
	GetGameState(ctx context.Context) (*models.GameState, error)
	UpdateGameState(ctx context.Context, fn StateFunc) (*models.GameState, error)
	DeleteGameState(ctx context.Context) error

	InsertBid(ctx context.Context, bid *models.Bid) error
	// ListBids returns the round's bids ordered by amount desc, then creation time asc.
	ListBids(ctx context.Context, round int) ([]models.Bid, error)
	DeleteBids(ctx context.Context, round int) error
	DeleteAllBids(ctx context.Context) error

	// Mutate locks the game state and the team, runs fn, then applies its Mutation in one step.
	Mutate(ctx context.Context, teamID uuid.UUID, fn LockedFunc) (*models.Team, *models.GameState, error)
}
