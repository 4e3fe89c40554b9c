package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// User is keyed by email in the store; at most one user per email.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}
