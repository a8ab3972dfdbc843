package assessment

import (
	"sync"

	"skillproof/internal/types"
)

// SessionStore holds generated test sessions. The current backing is
// process-local memory; any replacement must preserve lookup-after-insert
// semantics within the serving boundary.
type SessionStore interface {
	Put(session types.TestSession)
	Get(testID string) (types.TestSession, bool)
	Len() int
}

// MemoryStore is a mutex-guarded in-memory SessionStore. Sessions live for
// the process lifetime; there is no eviction or TTL.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]types.TestSession
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]types.TestSession)}
}

// Put stores a session under its test id, overwriting silently on collision
func (s *MemoryStore) Put(session types.TestSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.TestID] = session
}

// Get returns the session stored under testID
func (s *MemoryStore) Get(testID string) (types.TestSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[testID]
	return session, ok
}

// Len returns the number of stored sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
