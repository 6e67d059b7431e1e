// internal/game/answer.go
package game

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
)

// SubmitAnswer judges the active team's answer and settles its balance: the winning bid is
// added when correct and subtracted when wrong. The balance change and the move to scoring
// are applied together.
func (g *Game) SubmitAnswer(ctx context.Context, teamID uuid.UUID, option string) (*models.AnswerResult, error) {
	opt, err := models.ParseOption(option)
	if err != nil {
		return nil, invalidInput("%v", err)
	}

	state, err := g.GetState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Phase != models.PhaseQuestion || !state.IsActiveTeam(teamID) {
		return nil, ErrNotYourTurn
	}
	if state.CurrentQuestionID == nil {
		return nil, ErrMissingData
	}
	q, err := g.store.GetQuestion(ctx, *state.CurrentQuestionID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrMissingData
	}
	if err != nil {
		return nil, wrapStoreErr("get question", err)
	}

	correct := opt == q.CorrectOption
	var stake int
	team, after, err := g.store.Mutate(ctx, teamID, func(cur models.GameState, team *models.Team) (Mutation, error) {
		if cur.Phase != models.PhaseQuestion || !cur.IsActiveTeam(teamID) {
			return Mutation{}, ErrNotYourTurn
		}
		if cur.CurrentQuestionID == nil || *cur.CurrentQuestionID != q.ID {
			return Mutation{}, ErrStaleState
		}
		if team == nil {
			return Mutation{}, ErrMissingData
		}
		stake = cur.WinningBid()
		delta := stake
		if !correct {
			delta = -stake
		}
		return Mutation{
			BalanceDelta: delta,
			State:        models.GameStateUpdate{Phase: ptr(models.PhaseScoring)},
		}, nil
	})
	if err != nil {
		return nil, wrapStoreErr("settle answer", err)
	}

	g.logger.WithFields(log.Fields{
		"team_id": teamID,
		"round":   after.CurrentRound,
		"correct": correct,
		"stake":   stake,
		"balance": team.Balance,
	}).Info("answer settled")
	g.logEvent(EventAnswerSubmitted, after.CurrentRound, teamID, map[string]interface{}{
		"option":     string(opt),
		"correct":    correct,
		"stake":      stake,
		"newBalance": team.Balance,
	})
	return &models.AnswerResult{
		Correct:       correct,
		NewBalance:    team.Balance,
		CorrectAnswer: q.CorrectOption,
	}, nil
}
