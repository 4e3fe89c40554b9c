package token

import (
	"time"

	"github.com/dkozlov/livetodo/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every session token. Subject holds the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service issues and verifies bearer session tokens. Verify collapses every
// failure mode (bad signature, expiry, malformed token, dead session) into
// domain.ErrTokenInvalid so callers cannot leak the distinction.
type Service interface {
	Issue(user domain.User) (string, error)
	Verify(raw string) (*Claims, error)
}

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithExpirationRequired(),
)

func newClaims(user domain.User, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  user.Name,
		Email: user.Email,
	}
}

func sign(claims Claims, key []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func verify(raw string, key []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Email == "" || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// claimedEmail decodes the token WITHOUT checking its signature, purely to
// learn which session binding to look up. Nothing returned here may be
// trusted until verify has run against the bound secret.
func claimedEmail(raw string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", domain.ErrTokenInvalid
	}
	if claims.Email == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Email, nil
}
