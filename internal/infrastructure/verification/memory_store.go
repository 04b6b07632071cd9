package verification

import (
	"context"
	"sync"

	domain "hamrah-bazaar/internal/domain/verification"
)

// MemoryStore keeps live one-time codes in process memory, keyed by
// subject. The codes are short-lived and worthless after expiry, so losing
// them on restart only forces the user to request a new one. The store is
// constructed once at startup and injected; nothing reads it through a
// package global.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]*domain.Code
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]*domain.Code),
	}
}

// Put overwrites any live code for the same subject: last write wins.
func (s *MemoryStore) Put(_ context.Context, c *domain.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.codes[c.Subject] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, subject string) (*domain.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[subject]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}

	cp := *c
	return &cp, nil
}

func (s *MemoryStore) Consume(_ context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, subject)
	return nil
}
