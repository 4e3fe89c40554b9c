package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dkozlov/livetodo/internal/domain"
	"github.com/dkozlov/livetodo/internal/infrastructure/memory"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	user := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "u1" || got.Name != "Alice" {
		t.Errorf("got %+v, want the stored user", got)
	}
}

func TestUserRepository_DuplicateEmail_Fails(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	first := &domain.User{ID: "u1", Email: "alice@example.com"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &domain.User{ID: "u2", Email: "alice@example.com"}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}

	// The original record must be untouched.
	got, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("stored ID = %q, want u1", got.ID)
	}
}

func TestUserRepository_UnknownEmail_NotFound(t *testing.T) {
	repo := memory.NewUserRepository()

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}
