package services

import (
	"sync"
	"time"

	"moviedetectives/models"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// sessionStoreSize bounds how many unanswered sessions may accumulate.
	sessionStoreSize = 100
	// sessionTTL is how long an unanswered session stays answerable.
	sessionTTL = 10 * time.Minute
)

// SessionData links a generated question to the movie it is about, pending
// the player's answer. Sessions are write-once, read-once.
type SessionData struct {
	QuizID    string
	QuizType  models.QuizType
	Question  any
	Movie     *models.Movie
	Chat      *Chat
	StartedAt time.Time
}

// SessionStore holds open quiz sessions in an expiring, size-bounded cache.
// Unanswered sessions are evicted after sessionTTL or once the store exceeds
// sessionStoreSize entries, whichever comes first.
type SessionStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *SessionData]
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		cache: expirable.NewLRU[string, *SessionData](sessionStoreSize, nil, sessionTTL),
	}
}

// Create stores the session under a fresh random id and returns the id.
func (s *SessionStore) Create(session *SessionData) string {
	id := uuid.NewString()
	session.QuizID = id

	s.mu.Lock()
	s.cache.Add(id, session)
	s.mu.Unlock()

	return id
}

// Take retrieves and removes a session in one step. Concurrent calls with
// the same id see exactly one success; every later call gets
// ErrSessionNotFound, which also covers double submissions.
func (s *SessionStore) Take(id string) (*SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.cache.Remove(id)

	return session, nil
}

// Sessions lists the currently open sessions.
func (s *SessionStore) Sessions() []*SessionData {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Values()
}
