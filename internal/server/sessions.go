package server

import (
	"fmt"

	"addressfinder-backend/internal/finder"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SessionStore keeps the most recently used sessions by id. Sessions are
// values, replacing one is a single Add so readers never see a partial batch.
type SessionStore struct {
	cache *lru.Cache[string, finder.Session]
}

func NewSessionStore(capacity int) (*SessionStore, error) {
	cache, err := lru.New[string, finder.Session](capacity)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &SessionStore{cache: cache}, nil
}

// Create stores `session` under a new random id.
func (s *SessionStore) Create(session finder.Session) string {
	id := uuid.NewString()
	s.cache.Add(id, session)
	return id
}

func (s *SessionStore) Get(id string) (finder.Session, bool) {
	return s.cache.Get(id)
}

// Replace swaps the session stored under `id`, it returns false if `id` is
// unknown or was evicted.
func (s *SessionStore) Replace(id string, session finder.Session) bool {
	if !s.cache.Contains(id) {
		return false
	}
	s.cache.Add(id, session)
	return true
}

func (s *SessionStore) Len() int {
	return s.cache.Len()
}
