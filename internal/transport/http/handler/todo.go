package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dkozlov/livetodo/internal/domain"
	"github.com/dkozlov/livetodo/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type todoLister interface {
	List(ctx context.Context, email string) ([]domain.Todo, error)
}

type TodoHandler struct {
	todoUsecase todoLister
	logger      *slog.Logger
}

func NewTodoHandler(todoUsecase todoLister, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todoUsecase: todoUsecase,
		logger:      logger.With("component", "todo_handler"),
	}
}

// GET /todos
// Runs behind the Auth middleware; the verified claims select whose list is
// returned. A first load seeds the default todos.
func (h *TodoHandler) List(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	todos, err := h.todoUsecase.List(c.Request.Context(), claims.Email)
	if err != nil {
		h.logger.Error("list todos", "email", claims.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}
