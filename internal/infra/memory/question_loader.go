package memory

import (
	"context"

	"millionaire-game-service/internal/domain"
)

// StaticQuestionLoader serves a fixed question set grouped by level
// (useful for tests/demos and as a loader behind the Redis bank).
type StaticQuestionLoader struct {
	byLevel map[int][]domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	byLevel := make(map[int][]domain.Question)
	for _, q := range questions {
		byLevel[q.Level] = append(byLevel[q.Level], q)
	}
	return &StaticQuestionLoader{byLevel: byLevel}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, level int) ([]domain.Question, error) {
	return l.byLevel[level], nil
}
