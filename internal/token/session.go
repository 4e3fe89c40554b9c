package token

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dkozlov/livetodo/internal/domain"
)

const sessionKeyLen = 32

// SessionSecrets signs each user's tokens with an ephemeral per-email key
// generated at issue time. Issuing again replaces the key, so a second login
// invalidates every token issued before it: single active session per user
// with no blacklist. The trade-off is that the bindings live in memory only,
// so a restart logs everyone out.
type SessionSecrets struct {
	mu      sync.RWMutex
	secrets map[string][]byte
	ttl     time.Duration
}

func NewSessionSecrets(ttl time.Duration) *SessionSecrets {
	return &SessionSecrets{
		secrets: make(map[string][]byte),
		ttl:     ttl,
	}
}

func (s *SessionSecrets) Issue(user domain.User) (string, error) {
	key := make([]byte, sessionKeyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}

	s.mu.Lock()
	s.secrets[user.Email] = key
	s.mu.Unlock()

	return sign(newClaims(user, s.ttl), key)
}

// Verify first does an unverified decode to recover the claimed email, then
// checks the signature against that email's live binding. A token whose
// email has no binding (session never started, or superseded by a later
// login) is invalid before any signature check happens.
func (s *SessionSecrets) Verify(raw string) (*Claims, error) {
	email, err := claimedEmail(raw)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	s.mu.RLock()
	key, ok := s.secrets[email]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return verify(raw, key)
}

// Active reports the number of live session bindings. Metrics only.
func (s *SessionSecrets) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.secrets)
}
