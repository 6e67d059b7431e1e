// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the transport layer can pick a status code.
type Kind int

const (
	KindInternal   Kind = iota
	KindValidation      // malformed or out-of-range input
	KindRule            // a game rule rejected the action
	KindNotFound        // the requested thing does not exist
)

// Error is a game-level error carrying its Kind. Sentinels below are compared with errors.Is.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrInvalidInput = &Error{KindValidation, "invalid input"}

	ErrBiddingClosed     = &Error{KindRule, "bidding closed"}
	ErrBiddingExpired    = &Error{KindRule, "timer expired"}
	ErrInvalidTeam       = &Error{KindRule, "invalid team"}
	ErrTeamInactive      = &Error{KindRule, "team is not active"}
	ErrNonPositiveAmount = &Error{KindValidation, "bid amount must be a positive integer"}
	ErrInsufficientFunds = &Error{KindRule, "insufficient funds"}

	ErrNotYourTurn       = &Error{KindRule, "not your turn or wrong phase"}
	ErrMissingData       = &Error{KindRule, "data missing"}
	ErrIllegalTransition = &Error{KindRule, "illegal phase transition"}
	ErrStaleState        = &Error{KindRule, "game state changed, retry"}
	ErrDuplicateTeam     = &Error{KindRule, "team name already taken"}

	ErrTeamNotFound     = &Error{KindNotFound, "team not found"}
	ErrNoActiveQuestion = &Error{KindNotFound, "no active question"}
	ErrNoTeamsLeft      = &Error{KindNotFound, "no teams left to spin"}

	// ErrRecordNotFound is returned by Store implementations when a row is missing.
	ErrRecordNotFound = &Error{KindNotFound, "record not found"}
)

// KindOf reports the Kind of err, KindInternal when err is not a game error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
