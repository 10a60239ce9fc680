package session

import (
	"context"
	"encoding/json"
	"sync"

	"storepulse/internal/client/models"
	"storepulse/internal/logging"
)

// Store owns the current Session and persists it on every mutation.
//
// It is an explicit, injectable object rather than a package-level global so
// tests get a fresh store each. All mutations replace fields wholesale; there
// are no partial updates to race on.
type Store struct {
	mu        sync.RWMutex
	session   Session
	persister Persister
	log       logging.Logger
}

// NewStore builds a Store seeded from the persister. A missing or malformed
// snapshot yields an empty (logged-out) session; restore never fails loudly
// because a corrupt local cache must not crash the client.
func NewStore(p Persister, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{persister: p, log: log}
	s.restore()
	return s
}

func (s *Store) restore() {
	if s.persister == nil {
		return
	}
	data, err := s.persister.Load()
	if err != nil || len(data) == 0 {
		if err != nil {
			s.log.Warn(context.Background(), "session restore failed, starting logged out", "error", err)
		}
		return
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn(context.Background(), "persisted session is malformed, starting logged out", "error", err)
		return
	}
	if snap.State.Token != nil {
		s.session.Token = *snap.State.Token
	}
	s.session.User = snap.State.User
}

// Get returns a copy of the current session.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token, or "" when logged out. It reads
// the live state; callers must invoke it per use, never cache the result.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// User returns the cached profile, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Get().Authenticated()
}

// SetToken replaces only the token.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = token
	s.persist()
}

// SetUser replaces only the user profile.
func (s *Store) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = u
	s.persist()
}

// Login sets both fields atomically. Called exactly once per successful
// sign-in with the identity and token the backend returned.
func (s *Store) Login(u *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{Token: token, User: u}
	s.persist()
}

// Logout clears both fields. Safe to call repeatedly: the result is always a
// fully logged-out session, which is what makes the 401 side effect
// idempotent under concurrent responses.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.persist()
}

// persist writes the current {token,user} pair under the fixed storage key.
// Callers must hold s.mu. Persistence failures are logged and otherwise
// ignored; the in-memory state stays authoritative for this process.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	snap := snapshot{Version: persistVersion}
	if s.session.Token != "" {
		tok := s.session.Token
		snap.State.Token = &tok
	}
	snap.State.User = s.session.User

	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error(context.Background(), "session snapshot marshal failed", "error", err)
		return
	}
	if err := s.persister.Save(data); err != nil {
		s.log.Warn(context.Background(), "session snapshot save failed", "error", err)
	}
}
