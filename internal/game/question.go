// internal/game/question.go
package game

import (
	"context"
	"errors"

	"github.com/jason-s-yu/bidquiz/internal/models"
)

// CurrentQuestion returns the question of the current round along with the state it was
// read from. ErrNoActiveQuestion when none is set or the reference is dangling.
func (g *Game) CurrentQuestion(ctx context.Context) (*models.Question, *models.GameState, error) {
	state, err := g.GetState(ctx)
	if err != nil {
		return nil, nil, err
	}
	if state.CurrentQuestionID == nil {
		return nil, state, ErrNoActiveQuestion
	}
	q, err := g.store.GetQuestion(ctx, *state.CurrentQuestionID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, state, ErrNoActiveQuestion
	}
	if err != nil {
		return nil, state, wrapStoreErr("get question", err)
	}
	return q, state, nil
}

// AnswerRevealed reports whether the answer key may be shown to teams in the given phase.
func AnswerRevealed(p models.Phase) bool {
	return p == models.PhaseScoring || p == models.PhaseEnded
}
