package memory

import (
	"context"
	"sync"

	"github.com/dkozlov/livetodo/internal/domain"
)

// TodoRepository keeps each owner's todos as an ordered slice keyed by
// owner email. Like the user store it is process-lifetime only.
type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string][]domain.Todo
}

func NewTodoRepository() *TodoRepository {
	return &TodoRepository{todos: make(map[string][]domain.Todo)}
}

func (r *TodoRepository) ListByOwner(_ context.Context, email string) ([]domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.todos[email]
	out := make([]domain.Todo, len(list))
	copy(out, list)
	return out, nil
}

func (r *TodoRepository) Add(_ context.Context, todo domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos[todo.Creator] = append(r.todos[todo.Creator], todo)
	return nil
}

func (r *TodoRepository) Update(_ context.Context, todo domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for owner, list := range r.todos {
		for i := range list {
			if list[i].ID == todo.ID {
				list[i].Text = todo.Text
				list[i].Status = todo.Status
				list[i].MarkedBy = todo.MarkedBy
				r.todos[owner] = list
				return nil
			}
		}
	}
	// Unknown ID: events are fire-and-forget, the broadcast is the source
	// of truth for the UI, so a miss here is not an error.
	return nil
}

func (r *TodoRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for owner, list := range r.todos {
		for i := range list {
			if list[i].ID == id {
				r.todos[owner] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *TodoRepository) InitializeDefaults(_ context.Context, email string, defaults []domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.todos[email]) > 0 {
		return nil
	}
	list := make([]domain.Todo, len(defaults))
	copy(list, defaults)
	r.todos[email] = list
	return nil
}
