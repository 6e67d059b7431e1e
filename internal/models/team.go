package models

import "github.com/google/uuid"

// DefaultBalance is the starting purse for every team and the value restored by balance resets.
const DefaultBalance = 10000

// Team is a row in the teams table.
type Team struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Balance  int       `json:"balance"`
	IsActive bool      `json:"isActive"`
	HasSpun  bool      `json:"hasSpun"` // set once the team has been drawn on the lobby wheel
}

// NewTeam returns a fresh team with the default balance, active and unspun.
func NewTeam(name string) Team {
	return Team{
		ID:       uuid.New(),
		Name:     name,
		Balance:  DefaultBalance,
		IsActive: true,
	}
}
