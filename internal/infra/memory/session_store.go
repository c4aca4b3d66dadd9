package memory

import (
	"sync"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// It keeps the latest session per player; a finished session stays
// readable until the player's next run replaces it.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
	}
}

// Active returns the player's session only while it is unfinished.
func (s *SessionStore) Active(playerID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[playerID]
	if !ok || session.Finished() {
		return nil, false
	}
	return session, true
}

// Put stores a new session, refusing while the player still has an
// unfinished one.
func (s *SessionStore) Put(session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[session.PlayerID()]; ok && !existing.Finished() {
		return domain.ErrSessionActive
	}
	s.sessions[session.PlayerID()] = session
	return nil
}

// Last returns the player's most recent session regardless of state.
func (s *SessionStore) Last(playerID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[playerID]
	return session, ok
}
