package session

import (
	"context"
	"sync"
	"time"
)

// Store keeps sessions in memory, keyed by id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	theme    Theme
	ttl      time.Duration
}

// NewStore returns an empty store. New sessions start with theme. Sessions
// idle for longer than ttl are dropped by Prune; ttl <= 0 keeps them forever.
func NewStore(theme Theme, ttl time.Duration) *Store {
	return &Store{sessions: make(map[string]*Session), theme: theme, ttl: ttl}
}

// Get returns the session with id, creating a new one when id is unknown.
// created reports whether a new session was made.
func (st *Store) Get(id string) (s *Session, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok && id != "" {
		return s, false
	}
	s = newSession(st.theme)
	st.sessions[s.ID] = s
	return s, true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Prune drops sessions last updated before now-ttl and returns how many.
func (st *Store) Prune(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.data.UpdatedAt)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Janitor calls Prune every interval until ctx is done.
func (st *Store) Janitor(ctx context.Context, interval time.Duration, onPrune func(n int)) {
	if st.ttl <= 0 || interval <= 0 {
		return
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tk.C:
			if n := st.Prune(now); n > 0 && onPrune != nil {
				onPrune(n)
			}
		}
	}
}
