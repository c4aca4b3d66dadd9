package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"millionaire-game-service/internal/domain"
)

// QuestionBank is an in-memory implementation of app.QuestionBank. It
// keeps per-level pools of unused questions and reserves under a lock,
// so concurrent allocations never receive the same question.
type QuestionBank struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	unused map[int][]domain.Question
}

func NewQuestionBank(questions []domain.Question) *QuestionBank {
	unused := make(map[int][]domain.Question)
	for _, q := range questions {
		unused[q.Level] = append(unused[q.Level], q)
	}
	return &QuestionBank{
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		unused: unused,
	}
}

// FetchUnused picks a uniformly random unused question at the level and
// reserves it.
func (b *QuestionBank) FetchUnused(_ context.Context, level int) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pool := b.unused[level]
	if len(pool) == 0 {
		return domain.Question{}, domain.ErrNoUnusedQuestions
	}

	i := b.rnd.Intn(len(pool))
	q := pool[i]
	pool[i] = pool[len(pool)-1]
	b.unused[level] = pool[:len(pool)-1]
	return q, nil
}

// Remaining reports how many unused questions are left at the level.
func (b *QuestionBank) Remaining(level int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.unused[level])
}
