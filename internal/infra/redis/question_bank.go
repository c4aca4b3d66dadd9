package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"millionaire-game-service/internal/domain"
)

// QuestionLoader fetches the question pool for a level from a backing
// store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, level int) ([]domain.Question, error)
}

// QuestionBank implements app.QuestionBank on Redis. Level pools are
// cached as hashes with TTL to avoid repeated backing-store hits:
//
//	HSET bank:level:{level} {questionID} {question JSON}
//
// Reservation rides on a shared set without TTL, so instances never
// hand the same question to two sessions:
//
//	SADD bank:used {questionID}   -- 1 means this caller reserved it
type QuestionBank struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FetchUnused walks the level pool in random order and reserves the
// first question no other session holds.
func (b *QuestionBank) FetchUnused(ctx context.Context, level int) (domain.Question, error) {
	candidates, err := b.levelCandidates(ctx, level)
	if err != nil {
		return domain.Question{}, err
	}

	b.mu.Lock()
	order := b.rnd.Perm(len(candidates))
	b.mu.Unlock()

	for _, i := range order {
		q := candidates[i]
		added, err := b.client.SAdd(ctx, b.usedKey(), q.ID).Result()
		if err != nil {
			return domain.Question{}, fmt.Errorf("reserve question: %w", err)
		}
		if added == 1 {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrNoUnusedQuestions
}

func (b *QuestionBank) levelCandidates(ctx context.Context, level int) ([]domain.Question, error) {
	key := b.levelKey(level)

	raw, err := b.client.HGetAll(ctx, key).Result()
	if err == nil && len(raw) > 0 {
		return decodeQuestions(raw)
	}

	result, err, _ := b.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := b.client.HGetAll(ctx, key).Result()
		if err == nil && len(raw) > 0 {
			return decodeQuestions(raw)
		}

		questions, err := b.loader.LoadQuestions(ctx, level)
		if err != nil {
			return nil, err
		}

		pipe := b.client.Pipeline()
		for _, q := range questions {
			data, err := json.Marshal(q)
			if err != nil {
				return nil, fmt.Errorf("marshal question %s: %w", q.ID, err)
			}
			pipe.HSet(ctx, key, q.ID, data)
		}
		if ttl := b.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) levelKey(level int) string {
	return fmt.Sprintf("bank:level:%d", level)
}

func (b *QuestionBank) usedKey() string {
	return "bank:used"
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(b.ttl) / 10
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}

func decodeQuestions(raw map[string]string) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(raw))
	for id, data := range raw {
		var q domain.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("unmarshal question %s: %w", id, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
