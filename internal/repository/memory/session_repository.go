package memory

import (
	"sync"

	"ai-research-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the process-wide session store. Entries never expire:
// sessions live for the process lifetime, with no eviction policy.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

// GetOrCreate returns the session for an id, lazily initializing an empty one
// on first reference. The same *store.Session instance is returned for every
// call with the same id.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}

	session := &store.Session{ID: sessionID}
	r.cache.Set(sessionID, session, cache.NoExpiration)
	return session
}

// Get returns an existing session without creating one.
func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// Reset clears a session's history and context without removing the entry.
// Resetting an unknown id is a no-op.
func (r *SessionRepository) Reset(sessionID string) {
	if session, found := r.Get(sessionID); found {
		session.Lock()
		session.Clear()
		session.Unlock()
	}
}
