// Package csrf issues and checks the per-session anti forgery token.
//
// A session holds at most one token. It is created by the first Issue call
// and never replaced afterwards, so every form rendered for the session
// carries the same value.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"sync"

	"github.com/pkg/errors"
)

const (
	// SessionKey is the session field holding the token.
	SessionKey = "csrf_token"

	// TokenBytes is the amount of random bytes in a token. The hex form is
	// twice as long.
	TokenBytes = 32
)

// Session is the part of a session the manager needs. *session.Session
// from fiber satisfies it.
type Session interface {
	Get(key any) any
	Set(key, val any)
}

// Manager issues and verifies tokens. Issue calls on one Session value are
// serialized. Requests holding separate copies of one stored session are
// serialized by the middleware, which locks the session id and reloads the
// stored token before issuing.
type Manager struct {
	mu     sync.Mutex
	random io.Reader
}

// NewManager returns a Manager reading from crypto/rand.
func NewManager() *Manager {
	return &Manager{random: rand.Reader}
}

// Issue returns the token of s, creating and storing it on first use.
func (m *Manager) Issue(s Session) (string, error) {
	token, _, err := m.issue(s)

	return token, err
}

func (m *Manager) issue(s Session) (token string, created bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token = Token(s); token != "" {
		return token, false, nil
	}

	buf := make([]byte, TokenBytes)
	if _, err = io.ReadFull(m.random, buf); err != nil {
		return "", false, errors.Wrap(err, "generate csrf token")
	}

	token = hex.EncodeToString(buf)
	s.Set(SessionKey, token)

	return token, true, nil
}

// Verify reports whether presented matches the token of s. It is false when
// s never issued a token.
func (m *Manager) Verify(s Session, presented string) bool {
	stored := Token(s)
	if stored == "" || presented == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// Token returns the stored token of s, or "" when none was issued.
func Token(s Session) string {
	if s == nil {
		return ""
	}

	token, _ := s.Get(SessionKey).(string)

	return token
}

var defaultManager = NewManager()

// Issue uses the package manager.
func Issue(s Session) (string, error) {
	return defaultManager.Issue(s)
}

// Verify uses the package manager.
func Verify(s Session, presented string) bool {
	return defaultManager.Verify(s, presented)
}
