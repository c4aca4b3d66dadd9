package app

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"millionaire-game-service/internal/domain"
)

const maxLevel = domain.QuestionLevels - 1

// Session is one player's run through the 15-level ladder. It is the
// state machine behind every game operation: level progression, prize
// accrual, lifeline bookkeeping, and terminal status. The engine
// assumes external mutual exclusion per player, so the session itself
// holds no lock.
type Session struct {
	id            string
	playerID      string
	createdAt     time.Time
	finishedAt    time.Time // zero while the game is running
	failed        bool
	currentLevel  int
	prize         int
	questions     []*SessionQuestion
	usedLifelines map[domain.LifelineKind]struct{}
	rules         Rules
	now           func() time.Time
	rnd           *rand.Rand
}

// NewSession builds a fresh session from one allocated question per
// level, shuffling each question's answer layout. Questions must
// arrive sorted ascending by level, the allocator's contract.
func NewSession(playerID string, questions []domain.Question, rules Rules) *Session {
	return NewSessionWithClock(playerID, questions, rules, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(playerID string, questions []domain.Question, rules Rules, now func() time.Time) *Session {
	rnd := rand.New(rand.NewSource(now().UnixNano()))
	sessionQuestions := make([]*SessionQuestion, 0, len(questions))
	for _, q := range questions {
		sessionQuestions = append(sessionQuestions, newSessionQuestion(q, rnd))
	}
	return &Session{
		id:            uuid.NewString(),
		playerID:      playerID,
		createdAt:     now(),
		questions:     sessionQuestions,
		usedLifelines: make(map[domain.LifelineKind]struct{}),
		rules:         rules.normalized(),
		now:           now,
		rnd:           rnd,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// PlayerID returns the owning player.
func (s *Session) PlayerID() string { return s.playerID }

// CreatedAt returns when the session started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// FinishedAt returns the termination time and whether the session has
// finished.
func (s *Session) FinishedAt() (time.Time, bool) {
	return s.finishedAt, !s.finishedAt.IsZero()
}

// Finished reports whether the session reached a terminal state.
func (s *Session) Finished() bool { return !s.finishedAt.IsZero() }

// CurrentLevel is the number of levels cleared so far; 15 means the
// whole ladder was cleared.
func (s *Session) CurrentLevel() int { return s.currentLevel }

// PreviousLevel is the level of the last question answered, -1 on a
// fresh session.
func (s *Session) PreviousLevel() int { return s.currentLevel - 1 }

// Prize is the amount currently banked; frozen once the session
// finishes.
func (s *Session) Prize() int { return s.prize }

// Questions returns the per-level session questions, ascending by
// level.
func (s *Session) Questions() []*SessionQuestion { return s.questions }

// CurrentQuestion returns the question awaiting an answer, or nil once
// the ladder is cleared.
func (s *Session) CurrentQuestion() *SessionQuestion {
	if s.currentLevel > maxLevel {
		return nil
	}
	return s.questions[s.currentLevel]
}

// UsedLifelines returns the lifeline kinds consumed so far.
func (s *Session) UsedLifelines() []domain.LifelineKind {
	out := make([]domain.LifelineKind, 0, len(s.usedLifelines))
	for _, kind := range domain.LifelineKinds {
		if _, used := s.usedLifelines[kind]; used {
			out = append(out, kind)
		}
	}
	return out
}

// TimeLeft reports how much of the session clock remains; zero or
// negative means the next answer times the game out.
func (s *Session) TimeLeft() time.Duration {
	return s.rules.TimeBudget - s.now().Sub(s.createdAt)
}

func (s *Session) timedOutAt(t time.Time) bool {
	return t.Sub(s.createdAt) > s.rules.TimeBudget
}

// Status derives the session state from the stored fields; it is never
// cached, so state and status cannot diverge.
func (s *Session) Status() domain.SessionStatus {
	switch {
	case s.finishedAt.IsZero():
		return domain.StatusInProgress
	case s.failed && s.timedOutAt(s.finishedAt):
		return domain.StatusLostTimeout
	case s.failed:
		return domain.StatusLostWrongAnswer
	case s.currentLevel > maxLevel:
		return domain.StatusWon
	default:
		return domain.StatusCashedOut
	}
}

// AnswerCurrentQuestion evaluates an answer for the current question.
// The session clock is checked first: past the budget the answer does
// not count and the game ends with the fireproof floor. A correct
// answer advances the ladder, banking the new tier or the top prize on
// the final level; a wrong one ends the game with the fireproof floor.
// The returned bool reports whether the answer counted as correct.
func (s *Session) AnswerCurrentQuestion(key domain.SlotKey) (bool, error) {
	if !domain.ValidSlot(key) {
		return false, domain.ErrUnknownSlot
	}
	if s.Finished() {
		return false, domain.ErrInvalidState
	}

	now := s.now()
	if s.timedOutAt(now) {
		s.finish(now, s.rules.FireproofFloor(s.currentLevel), true)
		return false, nil
	}

	if !s.CurrentQuestion().AnswerCorrect(key) {
		s.finish(now, s.rules.FireproofFloor(s.currentLevel), true)
		return false, nil
	}

	s.currentLevel++
	if s.currentLevel > maxLevel {
		s.finish(now, s.rules.MaxPrize(), false)
	} else {
		s.prize = s.rules.Tier(s.currentLevel)
	}
	return true, nil
}

// CashOut voluntarily ends the game, banking the tier of the last
// level cleared.
func (s *Session) CashOut() error {
	if s.Finished() {
		return domain.ErrInvalidState
	}
	s.finish(s.now(), s.rules.Tier(s.currentLevel), false)
	return nil
}

func (s *Session) finish(at time.Time, prize int, failed bool) {
	s.finishedAt = at
	s.prize = prize
	s.failed = failed
}
