package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Nullable distinguishes an absent JSON field (Set == false) from an explicit null
// (Set == true, Value == nil) so partial updates can clear nullable columns.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a Nullable that clears the field it is applied to.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// GameStateUpdate is a partial update of the singleton. Nil pointers and unset
// Nullables leave the current value untouched.
type GameStateUpdate struct {
	Phase             *Phase              `json:"phase,omitempty"`
	CurrentRound      *int                `json:"currentRound,omitempty"`
	CurrentQuestionID Nullable[uuid.UUID] `json:"currentQuestionId"`
	IsBiddingOpen     *bool               `json:"isBiddingOpen,omitempty"`
	ActiveTeamID      Nullable[uuid.UUID] `json:"activeTeamId"`
	WinningBidAmount  Nullable[int]       `json:"winningBidAmount"`
	BiddingEndsAt     Nullable[time.Time] `json:"biddingEndsAt"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u GameStateUpdate) IsEmpty() bool {
	return u.Phase == nil && u.CurrentRound == nil && u.IsBiddingOpen == nil &&
		!u.CurrentQuestionID.Set && !u.ActiveTeamID.Set &&
		!u.WinningBidAmount.Set && !u.BiddingEndsAt.Set
}

// Apply merges the update into s.
func (u GameStateUpdate) Apply(s *GameState) {
	if u.Phase != nil {
		s.Phase = *u.Phase
	}
	if u.CurrentRound != nil {
		s.CurrentRound = *u.CurrentRound
	}
	if u.IsBiddingOpen != nil {
		s.IsBiddingOpen = *u.IsBiddingOpen
	}
	if u.CurrentQuestionID.Set {
		s.CurrentQuestionID = u.CurrentQuestionID.Value
	}
	if u.ActiveTeamID.Set {
		s.ActiveTeamID = u.ActiveTeamID.Value
	}
	if u.WinningBidAmount.Set {
		s.WinningBidAmount = u.WinningBidAmount.Value
	}
	if u.BiddingEndsAt.Set {
		s.BiddingEndsAt = u.BiddingEndsAt.Value
	}
}
