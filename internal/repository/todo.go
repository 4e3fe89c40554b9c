package repository

import (
	"context"

	"github.com/dkozlov/livetodo/internal/domain"
)

type TodoRepository interface {
	ListByOwner(ctx context.Context, email string) ([]domain.Todo, error)
	// Add files the todo under its creator's list.
	Add(ctx context.Context, todo domain.Todo) error
	// Update matches by ID across all owners; update events do not carry
	// the creator. Unknown IDs are a no-op.
	Update(ctx context.Context, todo domain.Todo) error
	Delete(ctx context.Context, id int) error
	// InitializeDefaults populates the owner's list with defaults only when
	// the list is empty. Idempotent per owner after the first call.
	InitializeDefaults(ctx context.Context, email string, defaults []domain.Todo) error
}
