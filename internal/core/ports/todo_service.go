package ports

import (
	"context"

	"github.com/todo-api/todo-service/internal/core/domain"
)

// CreateTodoResult wraps a created todo. Replayed is true when the
// Idempotency-Key matched an earlier create.
type CreateTodoResult struct {
	Todo     *domain.Todo
	Replayed bool
}

// TodoService defines the use cases on a caller's own todo list.
type TodoService interface {
	Create(ctx context.Context, owner domain.UserID, in domain.TodoInput, idempotencyKey string) (*CreateTodoResult, error)
	List(ctx context.Context, owner domain.UserID) ([]*domain.Todo, error)
	Get(ctx context.Context, owner domain.UserID, id domain.TodoID) (*domain.Todo, error)
	Update(ctx context.Context, owner domain.UserID, id domain.TodoID, in domain.TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, owner domain.UserID, id domain.TodoID) error
}
