// Package portal is a small client for the portal API. It carries the
// bearer token on API calls, duplicates it into the token cookie the edge
// guard reads, and keeps the session persisted between runs the way the
// web client keeps it in local storage.
package portal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Session is the client-held identity state. It is not server state; the
// server only ever sees the token.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"` // unix seconds
}

// expired mirrors the guards' check: valid only while exp*1000 > now ms.
func (s Session) expired(now time.Time) bool {
	return s.Exp*1000 < now.UnixMilli()
}

// SessionStore persists a Session to a JSON file. Hydrate restores it once
// at startup; Login and Logout replace or clear it.
type SessionStore struct {
	path string

	mu          sync.Mutex
	current     Session
	loggedIn    bool
	initialized bool
}

// NewSessionStore creates a store backed by the file at path. Nothing is
// read until Hydrate.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Hydrate restores the persisted session. It runs at most once; later
// calls are no-ops. A missing or unreadable file leaves the store empty
// but still marks it initialized.
func (s *SessionStore) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var ses Session
	if err := json.Unmarshal(data, &ses); err != nil {
		return
	}
	if ses.Token == "" {
		return
	}
	s.current = ses
	s.loggedIn = true
}

// Login stores and persists the session.
func (s *SessionStore) Login(ses Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(ses)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.current = ses
	s.loggedIn = true
	s.initialized = true
	return nil
}

// Logout clears the session and removes the persisted file.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	s.loggedIn = false

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Current returns the session and whether it is live. An expired session
// is cleared on detection, exactly as the web client drops it.
func (s *SessionStore) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return Session{}, false
	}
	if s.current.expired(time.Now()) {
		s.current = Session{}
		s.loggedIn = false
		os.Remove(s.path)
		return Session{}, false
	}
	return s.current, true
}

// Initialized reports whether Hydrate (or a Login) has run.
func (s *SessionStore) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}
