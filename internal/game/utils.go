// internal/game/utils.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

// wrapStoreErr adds context to store failures but passes game errors through untouched so
// their messages reach the caller as-is.
func wrapStoreErr(op string, err error) error {
	if KindOf(err) != KindInternal {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// questionForRound returns the id of the question played in the given round, or a clearing
// Nullable when the bank has run out.
func questionForRound(questions []models.Question, round int) models.Nullable[uuid.UUID] {
	for _, q := range questions {
		if q.Seq == round {
			return models.Some(q.ID)
		}
	}
	return models.Null[uuid.UUID]()
}
