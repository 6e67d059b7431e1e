package models

import "github.com/google/uuid"

// GameEvent captures one state change of the game for the historian.
type GameEvent struct {
	ID        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Round     int                    `json:"round"`
	TeamID    uuid.UUID              `json:"team_id"` // uuid.Nil for admin-driven events
	Payload   map[string]interface{} `json:"payload"`
	Timestamp int64                  `json:"timestamp"` // epoch millis
}
