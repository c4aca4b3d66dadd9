package app

import (
	"context"
	"errors"
	"fmt"

	"millionaire-game-service/internal/domain"
)

// QuestionBank supplies unused questions for new sessions. FetchUnused
// must pick uniformly at random among the level's unused questions and
// reserve the returned one atomically, so two sessions allocated
// concurrently never share a question. A level with nothing left
// returns domain.ErrNoUnusedQuestions.
type QuestionBank interface {
	FetchUnused(ctx context.Context, level int) (domain.Question, error)
}

// allocateQuestions reserves one question per level 0..14, ascending.
// Any level the bank cannot supply fails the whole allocation; no
// partial set is ever returned.
func allocateQuestions(ctx context.Context, bank QuestionBank) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, domain.QuestionLevels)
	for level := 0; level < domain.QuestionLevels; level++ {
		q, err := bank.FetchUnused(ctx, level)
		if err != nil {
			if errors.Is(err, domain.ErrNoUnusedQuestions) {
				return nil, fmt.Errorf("level %d: %w", level, domain.ErrInsufficientPool)
			}
			return nil, fmt.Errorf("fetch question for level %d: %w", level, err)
		}
		if q.Level != level {
			return nil, fmt.Errorf("bank returned level %d question for level %d", q.Level, level)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
