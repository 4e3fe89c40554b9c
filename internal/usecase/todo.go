package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkozlov/livetodo/internal/domain"
	"github.com/dkozlov/livetodo/internal/repository"
)

// Broadcast channel and event names shared with the browser client.
const (
	TodoChannel     = "todo-channel"
	EventCreateTodo = "create-todo"
	EventUpdateTodo = "update-todo"
	EventDeleteTodo = "delete-todo"
)

// defaultTodos seed a user's list on their first load.
var defaultTodos = []domain.Todo{
	{ID: 1, Text: "Buy groceries", Status: false, Creator: "user@example.com"},
	{ID: 2, Text: "Walk the dog", Status: false, Creator: "user@example.com"},
	{ID: 3, Text: "Read a book", Status: false, Creator: "user@example.com"},
	{ID: 4, Text: "Write a blog post", Status: false, Creator: "user@example.com"},
}

type TodoUsecase struct {
	todos repository.TodoRepository
}

func NewTodoUsecase(todos repository.TodoRepository) *TodoUsecase {
	return &TodoUsecase{todos: todos}
}

// List returns the user's todos, seeding the default set exactly once for a
// user whose list is empty.
func (u *TodoUsecase) List(ctx context.Context, email string) ([]domain.Todo, error) {
	list, err := u.todos.ListByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if len(list) > 0 {
		return list, nil
	}

	if err := u.todos.InitializeDefaults(ctx, email, defaultTodos); err != nil {
		return nil, fmt.Errorf("initialize default todos: %w", err)
	}
	list, err = u.todos.ListByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return list, nil
}

// Apply records a todo-channel mutation in the store so that initial page
// loads match the broadcast history. Events the relay does not recognize
// are ignored: the relay forwards them to the bus untouched either way.
func (u *TodoUsecase) Apply(ctx context.Context, event string, data json.RawMessage) error {
	var todo domain.Todo
	if err := json.Unmarshal(data, &todo); err != nil {
		return fmt.Errorf("decode %s payload: %w", event, err)
	}

	switch event {
	case EventCreateTodo:
		return u.todos.Add(ctx, todo)
	case EventUpdateTodo:
		return u.todos.Update(ctx, todo)
	case EventDeleteTodo:
		return u.todos.Delete(ctx, todo.ID)
	}
	return nil
}
