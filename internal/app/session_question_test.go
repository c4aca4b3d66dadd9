package app

import (
	"math/rand"
	"testing"

	"millionaire-game-service/internal/domain"
)

func TestVariantsArePermutation(t *testing.T) {
	q := domain.Question{
		ID:      "q1",
		Level:   3,
		Text:    "pick one",
		Answers: [4]string{"1", "2", "3", "4"},
	}

	for seed := int64(0); seed < 20; seed++ {
		sq := newSessionQuestion(q, rand.New(rand.NewSource(seed)))

		variants := sq.Variants()
		if len(variants) != 4 {
			t.Fatalf("expected 4 variants, got %d", len(variants))
		}
		seen := make(map[string]bool)
		for _, key := range domain.SlotKeys {
			text, ok := variants[key]
			if !ok {
				t.Fatalf("slot %s missing from variants", key)
			}
			if seen[text] {
				t.Fatalf("answer %q assigned to two slots", text)
			}
			seen[text] = true
		}

		correct := 0
		for _, key := range domain.SlotKeys {
			if variants[key] == q.CorrectAnswer() {
				correct++
			}
		}
		if correct != 1 {
			t.Fatalf("expected exactly one correct slot, got %d", correct)
		}
	}
}

func TestCorrectSlotByInverseLookup(t *testing.T) {
	// Layout pinned by hand: slot b holds the canonical answer "1".
	sq := &SessionQuestion{
		question: domain.Question{
			ID:      "q1",
			Level:   0,
			Text:    "pick one",
			Answers: [4]string{"1", "2", "3", "4"},
		},
		variants: map[domain.SlotKey]string{
			domain.SlotA: "2",
			domain.SlotB: "1",
			domain.SlotC: "4",
			domain.SlotD: "3",
		},
		help: make(map[domain.LifelineKind]domain.LifelineResult),
	}

	if got := sq.CorrectSlot(); got != domain.SlotB {
		t.Fatalf("expected correct slot b, got %s", got)
	}
	if !sq.AnswerCorrect(domain.SlotB) {
		t.Fatalf("expected slot b to be correct")
	}
	for _, key := range []domain.SlotKey{domain.SlotA, domain.SlotC, domain.SlotD} {
		if sq.AnswerCorrect(key) {
			t.Fatalf("expected slot %s to be wrong", key)
		}
	}
}

func TestQuestionDelegates(t *testing.T) {
	q := domain.Question{
		ID:      "q7",
		Level:   7,
		Text:    "what delegates where?",
		Answers: [4]string{"a1", "a2", "a3", "a4"},
	}
	sq := newSessionQuestion(q, rand.New(rand.NewSource(1)))

	if sq.Level() != q.Level {
		t.Fatalf("expected level %d, got %d", q.Level, sq.Level())
	}
	if sq.Text() != q.Text {
		t.Fatalf("expected text %q, got %q", q.Text, sq.Text())
	}
	if sq.Question().ID != q.ID {
		t.Fatalf("expected question %s, got %s", q.ID, sq.Question().ID)
	}
}
