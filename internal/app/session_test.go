package app

import (
	"fmt"
	"testing"
	"time"

	"millionaire-game-service/internal/domain"
)

func ladderQuestions() []domain.Question {
	questions := make([]domain.Question, 0, domain.QuestionLevels)
	for level := 0; level < domain.QuestionLevels; level++ {
		questions = append(questions, domain.Question{
			ID:      fmt.Sprintf("q%d", level),
			Level:   level,
			Text:    fmt.Sprintf("question for level %d", level),
			Answers: [4]string{"right", "wrong one", "wrong two", "wrong three"},
		})
	}
	return questions
}

// testClock returns a session on a controllable clock.
func testClock() (func() time.Time, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return current }, &current
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	now, _ := testClock()
	return NewSessionWithClock("player-1", ladderQuestions(), Rules{}, now)
}

func TestNewSessionShape(t *testing.T) {
	session := newTestSession(t)

	if len(session.Questions()) != domain.QuestionLevels {
		t.Fatalf("expected %d questions, got %d", domain.QuestionLevels, len(session.Questions()))
	}
	for i, q := range session.Questions() {
		if q.Level() != i {
			t.Fatalf("expected question %d at level %d, got %d", i, i, q.Level())
		}
	}
	if session.Status() != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", session.Status())
	}
	if session.CurrentLevel() != 0 || session.Prize() != 0 {
		t.Fatalf("expected fresh session, got level=%d prize=%d", session.CurrentLevel(), session.Prize())
	}
	if session.ID() == "" {
		t.Fatalf("expected session id")
	}
}

func TestAnswerCorrectContinuesGame(t *testing.T) {
	session := newTestSession(t)
	question := session.CurrentQuestion()

	correct, err := session.AnswerCurrentQuestion(question.CorrectSlot())
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !correct {
		t.Fatalf("expected correct answer")
	}
	if session.CurrentLevel() != 1 {
		t.Fatalf("expected level 1, got %d", session.CurrentLevel())
	}
	if session.CurrentQuestion() == question {
		t.Fatalf("expected a new current question")
	}
	if session.Status() != domain.StatusInProgress || session.Finished() {
		t.Fatalf("expected game to continue, got %s", session.Status())
	}
	if session.Prize() != 100 {
		t.Fatalf("expected prize 100 after first level, got %d", session.Prize())
	}
}

func TestAnswerLastQuestionWinsTopPrize(t *testing.T) {
	session := newTestSession(t)

	for level := 0; level < domain.QuestionLevels; level++ {
		correct, err := session.AnswerCurrentQuestion(session.CurrentQuestion().CorrectSlot())
		if err != nil {
			t.Fatalf("answer level %d: %v", level, err)
		}
		if !correct {
			t.Fatalf("expected correct answer at level %d", level)
		}
	}

	if session.Status() != domain.StatusWon {
		t.Fatalf("expected won, got %s", session.Status())
	}
	if !session.Finished() {
		t.Fatalf("expected finished session")
	}
	if session.Prize() != 1000000 {
		t.Fatalf("expected top prize, got %d", session.Prize())
	}
	if session.CurrentQuestion() != nil {
		t.Fatalf("expected no current question after the ladder")
	}
}

func TestWrongAnswerLosesWithFireproofFloor(t *testing.T) {
	cases := []struct {
		cleared int
		floor   int
	}{
		{cleared: 0, floor: 0},
		{cleared: 3, floor: 0},
		{cleared: 5, floor: 1000},
		{cleared: 10, floor: 32000},
		{cleared: 14, floor: 32000},
	}

	for _, tc := range cases {
		session := newTestSession(t)
		for i := 0; i < tc.cleared; i++ {
			if _, err := session.AnswerCurrentQuestion(session.CurrentQuestion().CorrectSlot()); err != nil {
				t.Fatalf("cleared=%d answer %d: %v", tc.cleared, i, err)
			}
		}

		wrong := wrongSlot(session.CurrentQuestion())
		correct, err := session.AnswerCurrentQuestion(wrong)
		if err != nil {
			t.Fatalf("cleared=%d wrong answer: %v", tc.cleared, err)
		}
		if correct {
			t.Fatalf("cleared=%d expected wrong answer to report false", tc.cleared)
		}
		if session.Status() != domain.StatusLostWrongAnswer {
			t.Fatalf("cleared=%d expected lost_wrong_answer, got %s", tc.cleared, session.Status())
		}
		if session.Prize() != tc.floor {
			t.Fatalf("cleared=%d expected floor %d, got %d", tc.cleared, tc.floor, session.Prize())
		}
	}
}

func TestAnswerPastBudgetTimesOutWithoutEvaluation(t *testing.T) {
	now, current := testClock()
	session := NewSessionWithClock("player-1", ladderQuestions(), Rules{}, now)

	// Even the correct slot must not count once the clock has run out.
	key := session.CurrentQuestion().CorrectSlot()
	*current = current.Add(36 * time.Minute)

	correct, err := session.AnswerCurrentQuestion(key)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if correct {
		t.Fatalf("expected timed-out answer to report false")
	}
	if session.Status() != domain.StatusLostTimeout {
		t.Fatalf("expected lost_timeout, got %s", session.Status())
	}
	if session.Prize() != 0 {
		t.Fatalf("expected no prize below first fireproof level, got %d", session.Prize())
	}
	if session.CurrentLevel() != 0 {
		t.Fatalf("expected level unchanged, got %d", session.CurrentLevel())
	}
}

func TestTimeoutKeepsFireproofFloor(t *testing.T) {
	now, current := testClock()
	session := NewSessionWithClock("player-1", ladderQuestions(), Rules{}, now)

	for i := 0; i < 7; i++ {
		if _, err := session.AnswerCurrentQuestion(session.CurrentQuestion().CorrectSlot()); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	*current = current.Add(time.Hour)
	if _, err := session.AnswerCurrentQuestion(domain.SlotA); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if session.Status() != domain.StatusLostTimeout {
		t.Fatalf("expected lost_timeout, got %s", session.Status())
	}
	if session.Prize() != 1000 {
		t.Fatalf("expected fireproof floor 1000, got %d", session.Prize())
	}
}

func TestCashOutBanksCurrentTier(t *testing.T) {
	session := newTestSession(t)
	for i := 0; i < 2; i++ {
		if _, err := session.AnswerCurrentQuestion(session.CurrentQuestion().CorrectSlot()); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	if err := session.CashOut(); err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if session.Status() != domain.StatusCashedOut {
		t.Fatalf("expected cashed_out, got %s", session.Status())
	}
	if session.Prize() != 200 {
		t.Fatalf("expected prize 200 for two cleared levels, got %d", session.Prize())
	}
	if err := session.CashOut(); err != domain.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState on second cash out, got %v", err)
	}
}

func TestCashOutOnFreshSessionBanksNothing(t *testing.T) {
	session := newTestSession(t)
	if err := session.CashOut(); err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if session.Prize() != 0 {
		t.Fatalf("expected zero prize, got %d", session.Prize())
	}
	if session.Status() != domain.StatusCashedOut {
		t.Fatalf("expected cashed_out, got %s", session.Status())
	}
}

func TestAnswerAfterFinishFails(t *testing.T) {
	session := newTestSession(t)
	if err := session.CashOut(); err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if _, err := session.AnswerCurrentQuestion(domain.SlotA); err != domain.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestAnswerUnknownSlotLeavesSessionUntouched(t *testing.T) {
	session := newTestSession(t)
	if _, err := session.AnswerCurrentQuestion("z"); err != domain.ErrUnknownSlot {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if session.Finished() || session.CurrentLevel() != 0 {
		t.Fatalf("expected session unchanged")
	}
}

func TestPreviousLevel(t *testing.T) {
	session := newTestSession(t)
	if session.PreviousLevel() != -1 {
		t.Fatalf("expected previous level -1, got %d", session.PreviousLevel())
	}
	if _, err := session.AnswerCurrentQuestion(session.CurrentQuestion().CorrectSlot()); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if session.PreviousLevel() != 0 {
		t.Fatalf("expected previous level 0, got %d", session.PreviousLevel())
	}
}

func TestStatusDerivation(t *testing.T) {
	now, current := testClock()

	finishedAt := func(session *Session) time.Time {
		at, ok := session.FinishedAt()
		if !ok {
			t.Fatalf("expected finished session")
		}
		return at
	}

	t.Run("wrong answer in time", func(t *testing.T) {
		session := NewSessionWithClock("p", ladderQuestions(), Rules{}, now)
		if _, err := session.AnswerCurrentQuestion(wrongSlot(session.CurrentQuestion())); err != nil {
			t.Fatalf("answer: %v", err)
		}
		if session.Status() != domain.StatusLostWrongAnswer {
			t.Fatalf("got %s", session.Status())
		}
		if finishedAt(session) != *current {
			t.Fatalf("expected finishedAt = now")
		}
	})

	t.Run("cash out past budget stays cashed_out", func(t *testing.T) {
		session := NewSessionWithClock("p", ladderQuestions(), Rules{}, now)
		*current = current.Add(2 * time.Hour)
		if err := session.CashOut(); err != nil {
			t.Fatalf("cash out: %v", err)
		}
		// failed is false, so a late finish is still a cash out.
		if session.Status() != domain.StatusCashedOut {
			t.Fatalf("got %s", session.Status())
		}
	})
}

func wrongSlot(q *SessionQuestion) domain.SlotKey {
	correct := q.CorrectSlot()
	for _, key := range domain.SlotKeys {
		if key != correct {
			return key
		}
	}
	return ""
}
