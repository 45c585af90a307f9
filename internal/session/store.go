// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps the last search outcome of each browser session in
// memory. Nothing is written to disk; outcomes vanish on restart or after
// the session has been idle for the store's TTL.
package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/smb-search/internal/search"
	"github.com/pdiddy/smb-search/pkg/types"
)

// DefaultTTL is the idle lifetime used when NewStore is given zero.
const DefaultTTL = 30 * time.Minute

// State is where a session sits in the search page flow.
type State string

const (
	StateEmpty   State = "empty"
	StateResults State = "results"
	StateError   State = "error"
)

// Outcome is the search state shown on the search page.
type Outcome struct {
	Query      search.Query
	State      State
	Records    []types.BusinessRecord
	Message    string
	SearchedAt time.Time
}

type entry struct {
	outcome  Outcome
	lastSeen time.Time
}

// Store maps session IDs to outcomes. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*entry
}

// NewStore returns an empty store whose sessions expire after ttl idle time.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// NewID returns a fresh random session ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape NewID produces.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Get returns the outcome for id and refreshes its idle timer. A missing or
// expired session reports false and an Outcome in StateEmpty.
func (s *Store) Get(id string) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Outcome{State: StateEmpty}, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return Outcome{State: StateEmpty}, false
	}
	e.lastSeen = now

	o := e.outcome
	o.Records = slices.Clone(o.Records)
	return o, true
}

// Put replaces the outcome for id. Expired sessions are swept on each call.
func (s *Store) Put(id string, o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, k)
		}
	}

	o.Records = slices.Clone(o.Records)
	s.sessions[id] = &entry{outcome: o, lastSeen: now}
}

// Delete drops the session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of sessions held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
