// internal/database/questions.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

const questionColumns = `id, seq, question_text, option_a, option_b, option_c, option_d, correct_option, explanation`

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	var correct string
	err := row.Scan(&q.ID, &q.Seq, &q.QuestionText,
		&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&correct, &q.Explanation,
	)
	if err != nil {
		return nil, err
	}
	q.CorrectOption = models.Option(correct)
	return &q, nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var qs []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, *q)
	}
	return qs, rows.Err()
}

func (s *Store) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	q, err := scanQuestion(s.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id=$1`, id))
	return q, mapErr(err)
}

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO questions (`+questionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.Seq, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		string(q.CorrectOption), q.Explanation,
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}
