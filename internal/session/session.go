// Package session holds the dashboard's credential: the bearer token issued
// by the backend at login and the stores it is persisted in between runs.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	CookieName = "jwt"
	CookiePath = "/"

	// MaxAge matches the backend token lifetime.
	MaxAge = 30 * 24 * time.Hour
)

// CredentialStore persists a single token. Load returns "" when nothing is
// stored or the stored credential expired.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string, maxAge time.Duration) error
	Clear(ctx context.Context) error
}

// Session is the credential every outgoing API call reads.
type Session struct {
	mu    sync.RWMutex
	store CredentialStore
	token string
}

// Open reads the persisted token, if any.
func Open(ctx context.Context, store CredentialStore) (*Session, error) {
	token, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential failed: %w", err)
	}
	return &Session{store: store, token: token}, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Begin persists token and makes it current. Nothing changes when
// persisting fails.
func (s *Session) Begin(ctx context.Context, token string) error {
	if err := s.store.Save(ctx, token, MaxAge); err != nil {
		return fmt.Errorf("save credential failed: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// End clears the persisted credential and forgets the token.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential failed: %w", err)
	}
	return nil
}
