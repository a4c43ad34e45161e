package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CookieStore keeps the token as a single Set-Cookie line in a file, the
// way a browser keeps the jwt cookie.
type CookieStore struct {
	path string
	now  func() time.Time
}

func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path, now: time.Now}
}

func (s *CookieStore) Path() string {
	return s.path
}

func (s *CookieStore) Load(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read cookie file failed: %w", err)
	}

	line := strings.TrimSpace(string(raw))
	if line == "" {
		return "", nil
	}
	cookie, err := http.ParseSetCookie(line)
	if err != nil {
		return "", fmt.Errorf("parse cookie failed: %w", err)
	}
	if cookie.Name != CookieName || cookie.Value == "" || cookie.MaxAge < 0 {
		return "", nil
	}
	if !cookie.Expires.IsZero() && s.now().After(cookie.Expires) {
		return "", nil
	}
	return cookie.Value, nil
}

func (s *CookieStore) Save(_ context.Context, token string, maxAge time.Duration) error {
	return s.write(&http.Cookie{
		Name:    CookieName,
		Value:   token,
		Path:    CookiePath,
		MaxAge:  int(maxAge / time.Second),
		Expires: s.now().Add(maxAge).UTC(),
	})
}

// Clear overwrites the cookie with Max-Age=0.
func (s *CookieStore) Clear(_ context.Context) error {
	return s.write(&http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   CookiePath,
		MaxAge: -1,
	})
}

func (s *CookieStore) write(cookie *http.Cookie) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create cookie dir failed: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(cookie.String()+"\n"), 0o600); err != nil {
		return fmt.Errorf("write cookie file failed: %w", err)
	}
	return nil
}
