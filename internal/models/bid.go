package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid is a sealed bid for the right to answer the question of a round.
type Bid struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"teamId"`
	RoundNumber int       `json:"roundNumber"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}
