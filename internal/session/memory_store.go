package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore forgets the credential when the process exits.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	expires time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.now().After(s.expires) {
		return "", nil
	}
	return s.token, nil
}

func (s *MemoryStore) Save(_ context.Context, token string, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expires = s.now().Add(maxAge)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
	return nil
}
