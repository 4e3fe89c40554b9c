package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkozlov/livetodo/internal/domain"
	"github.com/dkozlov/livetodo/internal/repository"
	"github.com/dkozlov/livetodo/internal/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthUsecase struct {
	users  repository.UserRepository
	tokens token.Service
}

func NewAuthUsecase(users repository.UserRepository, tokens token.Service) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

type AuthResult struct {
	User  domain.User
	Token string
}

// Register creates the user with a bcrypt password hash and issues a
// session token. Fails with domain.ErrUserExists on a duplicate email.
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := u.users.Create(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	signed, err := u.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: signed}, nil
}

// Login checks the password against the stored hash and issues a fresh
// token. In single-session mode issuing rotates the user's signing secret,
// invalidating every earlier token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(*user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: *user, Token: signed}, nil
}
