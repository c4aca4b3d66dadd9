package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"millionaire-game-service/internal/domain"
)

// QuestionLoader loads the per-level question pool from Postgres.
// Answers are stored as a JSONB array of four texts, the first one
// canonical-correct.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, level int) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, level, text, answers FROM questions WHERE level=$1`, level)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q   domain.Question
			raw []byte
		)
		if err := rows.Scan(&q.ID, &q.Level, &q.Text, &raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var answers []string
		if err := json.Unmarshal(raw, &answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers for %s: %w", q.ID, err)
		}
		if len(answers) != len(q.Answers) {
			return nil, fmt.Errorf("question %s has %d answers, want %d", q.ID, len(answers), len(q.Answers))
		}
		copy(q.Answers[:], answers)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
