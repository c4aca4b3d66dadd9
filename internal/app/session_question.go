package app

import (
	"math/rand"

	"millionaire-game-service/internal/domain"
)

// SessionQuestion binds one bank question into a session: the slot
// layout is shuffled once at construction and the lifeline payloads
// produced for it are kept alongside. The bound question itself is
// read-only.
type SessionQuestion struct {
	question domain.Question
	variants map[domain.SlotKey]string
	help     map[domain.LifelineKind]domain.LifelineResult
}

// newSessionQuestion shuffles the question's four answers across the
// display slots with a uniformly random permutation.
func newSessionQuestion(q domain.Question, rnd *rand.Rand) *SessionQuestion {
	variants := make(map[domain.SlotKey]string, len(domain.SlotKeys))
	for i, answer := range rnd.Perm(len(q.Answers)) {
		variants[domain.SlotKeys[i]] = q.Answers[answer]
	}
	return &SessionQuestion{
		question: q,
		variants: variants,
		help:     make(map[domain.LifelineKind]domain.LifelineResult),
	}
}

// Level mirrors the bound question's difficulty level.
func (q *SessionQuestion) Level() int {
	return q.question.Level
}

// Text mirrors the bound question's prompt.
func (q *SessionQuestion) Text() string {
	return q.question.Text
}

// Question returns the bound bank question.
func (q *SessionQuestion) Question() domain.Question {
	return q.question
}

// Variants returns a copy of the slot layout fixed at construction.
func (q *SessionQuestion) Variants() map[domain.SlotKey]string {
	out := make(map[domain.SlotKey]string, len(q.variants))
	for key, text := range q.variants {
		out[key] = text
	}
	return out
}

// CorrectSlot derives the winning slot by inverse lookup over the
// variant map, so correctness can never drift from the layout.
func (q *SessionQuestion) CorrectSlot() domain.SlotKey {
	correct := q.question.CorrectAnswer()
	for _, key := range domain.SlotKeys {
		if q.variants[key] == correct {
			return key
		}
	}
	// Unreachable: the variant map is a permutation of the answers.
	return ""
}

// AnswerCorrect reports whether the given slot holds the canonical
// correct answer.
func (q *SessionQuestion) AnswerCorrect(key domain.SlotKey) bool {
	return key == q.CorrectSlot()
}

// Help returns a copy of the lifeline payloads recorded for this
// question; an absent kind means that lifeline was not used here.
func (q *SessionQuestion) Help() map[domain.LifelineKind]domain.LifelineResult {
	out := make(map[domain.LifelineKind]domain.LifelineResult, len(q.help))
	for kind, result := range q.help {
		out[kind] = result
	}
	return out
}

func (q *SessionQuestion) recordHelp(kind domain.LifelineKind, result domain.LifelineResult) {
	q.help[kind] = result
}
