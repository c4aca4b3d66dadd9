package app

import (
	"context"
	"fmt"
	"time"

	"millionaire-game-service/internal/domain"
)

// SessionRepository abstracts how game sessions are stored (in-memory,
// Redis, etc). Put must refuse a session for a player who already has
// an unfinished one; finished sessions are kept for the caller to
// archive, never deleted by the engine.
type SessionRepository interface {
	Active(playerID string) (*Session, bool)
	Put(session *Session) error
}

// AccountService credits prize money to a player's persisted balance.
type AccountService interface {
	Credit(ctx context.Context, playerID string, amount int) error
}

// GameService contains the game use cases: starting a run, answering,
// lifelines, and cashing out. It drives the session state machine and
// settles prizes with the account service when a run ends.
type GameService struct {
	sessions SessionRepository
	bank     QuestionBank
	accounts AccountService
	rules    Rules
	now      func() time.Time
}

func NewGameService(sessions SessionRepository, bank QuestionBank, accounts AccountService, rules Rules) *GameService {
	return &GameService{
		sessions: sessions,
		bank:     bank,
		accounts: accounts,
		rules:    rules.normalized(),
		now:      time.Now,
	}
}

// WithClock is test-only for deterministic session timestamps.
func (s *GameService) WithClock(now func() time.Time) *GameService {
	s.now = now
	return s
}

// Start allocates fifteen fresh questions and opens a new session for
// the player. A player can run only one session at a time.
func (s *GameService) Start(ctx context.Context, playerID string) (*Session, error) {
	if _, ok := s.sessions.Active(playerID); ok {
		return nil, domain.ErrSessionActive
	}

	questions, err := allocateQuestions(ctx, s.bank)
	if err != nil {
		return nil, err
	}

	session := NewSessionWithClock(playerID, questions, s.rules, s.now)
	if err := s.sessions.Put(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Answer evaluates a slot for the player's current question and
// reports whether it counted as correct. A terminal outcome settles
// the prize.
func (s *GameService) Answer(ctx context.Context, playerID string, key domain.SlotKey) (bool, *Session, error) {
	session, ok := s.sessions.Active(playerID)
	if !ok {
		return false, nil, domain.ErrSessionNotFound
	}

	correct, err := session.AnswerCurrentQuestion(key)
	if err != nil {
		return false, session, err
	}
	if err := s.settle(ctx, session); err != nil {
		return correct, session, err
	}
	return correct, session, nil
}

// UseLifeline consumes a lifeline on the player's current question.
func (s *GameService) UseLifeline(ctx context.Context, playerID string, kind domain.LifelineKind) (domain.LifelineResult, *Session, error) {
	session, ok := s.sessions.Active(playerID)
	if !ok {
		return domain.LifelineResult{}, nil, domain.ErrSessionNotFound
	}
	result, err := session.UseLifeline(kind)
	return result, session, err
}

// CashOut voluntarily ends the player's session, banking and crediting
// the current tier.
func (s *GameService) CashOut(ctx context.Context, playerID string) (*Session, error) {
	session, ok := s.sessions.Active(playerID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if err := session.CashOut(); err != nil {
		return session, err
	}
	if err := s.settle(ctx, session); err != nil {
		return session, err
	}
	return session, nil
}

// Active returns the player's unfinished session, if any.
func (s *GameService) Active(playerID string) (*Session, bool) {
	return s.sessions.Active(playerID)
}

// settle credits a finished session's prize. The repository stops
// reporting the session as active once finished, so each run settles
// at most once.
func (s *GameService) settle(ctx context.Context, session *Session) error {
	if !session.Finished() || session.Prize() == 0 {
		return nil
	}
	if err := s.accounts.Credit(ctx, session.PlayerID(), session.Prize()); err != nil {
		return fmt.Errorf("credit prize: %w", err)
	}
	return nil
}
