// Package session holds the operator's authentication state: the bearer
// token for the backend and a small profile record. The store is constructed
// once at startup and handed to everything that needs it; nothing reads it
// through a package global.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/bluemoon/fees-admin/internal/authz"
	"github.com/bluemoon/fees-admin/internal/model"
	"github.com/bluemoon/fees-admin/internal/store"
)

// Store is safe for concurrent use. Token and profile changes are written
// through to the local state database so a restart keeps the login.
type Store struct {
	mu      sync.RWMutex
	token   string
	profile *model.UserProfile
	state   *store.StateStore
	logger  *slog.Logger
}

// New builds a Store backed by the given state store and loads any persisted
// session. A corrupt persisted profile is discarded rather than surfaced.
func New(state *store.StateStore, logger *slog.Logger) *Store {
	s := &Store{state: state, logger: logger}

	if token, err := state.Get(store.KeyToken); err != nil {
		logger.Error("load persisted token", "error", err)
	} else {
		s.token = token
	}

	raw, err := state.Get(store.KeyUser)
	if err != nil {
		logger.Error("load persisted profile", "error", err)
		return s
	}
	if raw != "" {
		var p model.UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			logger.Warn("discarding unparseable persisted profile", "error", err)
		} else {
			s.profile = &p
		}
	}
	return s
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.state.Set(store.KeyToken, token); err != nil {
		s.logger.Error("persist token", "error", err)
	}
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) SetProfile(p model.UserProfile) {
	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()

	raw, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("marshal profile", "error", err)
		return
	}
	if err := s.state.Set(store.KeyUser, string(raw)); err != nil {
		s.logger.Error("persist profile", "error", err)
	}
}

// Profile returns a copy of the stored profile, or nil when none is set.
func (s *Store) Profile() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Clear drops the token and profile, in memory and on disk. Used by logout
// and by the client's 401 interception.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.state.Delete(store.KeyToken); err != nil {
		s.logger.Error("clear persisted token", "error", err)
	}
	if err := s.state.Delete(store.KeyUser); err != nil {
		s.logger.Error("clear persisted profile", "error", err)
	}
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin resolves the operator's role, profile first, token claims second.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	profile, token := s.profile, s.token
	s.mu.RUnlock()
	return authz.IsAdmin(profile, token)
}
