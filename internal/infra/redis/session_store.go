package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions themselves stay in a local map; the engine mutates them
//     in place and assumes one owner per player.
//   - Redis marks session liveness per player, so a fleet can surface
//     "already playing" across instances.
//   - For true distribution you'd serialize session snapshots behind the
//     same keys; the liveness marker is the hook for that.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

// Active returns the player's unfinished session. A finished session
// clears its liveness marker on the way out.
func (s *SessionStore) Active(playerID string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[playerID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if session.Finished() {
		// best-effort marker cleanup
		_ = s.client.Del(context.Background(), s.key(playerID)).Err()
		return nil, false
	}
	return session, true
}

// Put stores a new session and marks the player as playing.
func (s *SessionStore) Put(session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[session.PlayerID()]; ok && !existing.Finished() {
		return domain.ErrSessionActive
	}
	s.sessions[session.PlayerID()] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.PlayerID()), session.ID(), s.ttl).Err()
	return nil
}

func (s *SessionStore) key(playerID string) string {
	return "game:session:" + playerID
}
