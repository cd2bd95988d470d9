package cart

import (
	"sync"
	"time"
)

// Store keeps the live sessions of the process, keyed by session id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	fee      int
	now      func() time.Time
}

func NewStore(fee int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		fee:      fee,
		now:      time.Now,
	}
}

// Open returns the session with the given id, creating an empty one for the user when
// it does not exist. A session id never moves between users.
func (s *Store) Open(sessionID, userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[sessionID]; ok && sess.UserID == userID {
		sess.touch(now)
		return sess
	}

	sess := newSession(sessionID, userID, s.fee, now)
	s.sessions[sessionID] = sess
	return sess
}

func (s *Store) Get(sessionID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

func (s *Store) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
