package store

import (
	"context"
	"sync"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// MemoryStore is an in-process ports.SessionStore, used by tests and by
// one-shot CLI invocations that pass the token via the environment.
type MemoryStore struct {
	mu       sync.RWMutex
	session  domain.Session
	hasToken bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (domain.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.hasToken && s.session.Valid(), nil
}

func (s *MemoryStore) Set(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.hasToken = true
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	s.hasToken = false
	return nil
}

func (s *MemoryStore) ClearToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = ""
	s.hasToken = false
	return nil
}
