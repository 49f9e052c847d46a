package study

import (
	"sync"
)

// entry pairs a session with its own mutex. The per-session mutex
// serializes operations on one session (including the model call they
// make) without blocking other sessions.
type entry struct {
	mu      sync.Mutex
	session *Session
}

// Store is an in-memory session store keyed by session id. Sessions do
// not survive a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

func (st *Store) put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = &entry{session: s}
}

func (st *Store) get(id string) (*entry, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	e, ok := st.sessions[id]
	return e, ok
}

// remove deletes a session. Removing an unknown id is a no-op.
func (st *Store) remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
