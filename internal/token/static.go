package token

import (
	"time"

	"github.com/dkozlov/livetodo/internal/domain"
)

// StaticSecrets signs every token with one process-wide key. Stateless:
// a token stays valid until its expiry regardless of later logins.
type StaticSecrets struct {
	key []byte
	ttl time.Duration
}

func NewStaticSecrets(key []byte, ttl time.Duration) *StaticSecrets {
	return &StaticSecrets{key: key, ttl: ttl}
}

func (s *StaticSecrets) Issue(user domain.User) (string, error) {
	return sign(newClaims(user, s.ttl), s.key)
}

func (s *StaticSecrets) Verify(raw string) (*Claims, error) {
	return verify(raw, s.key)
}
