package ports

import (
	"context"
	"time"

	"github.com/todo-api/todo-service/internal/core/domain"
)

// TodoRepository defines owner-scoped persistence for todo items. Every
// lookup filters by owner; an item belonging to someone else is reported as
// domain.ErrNotFound.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	List(ctx context.Context, owner domain.UserID, limit int) ([]*domain.Todo, error)
	Get(ctx context.Context, owner domain.UserID, id domain.TodoID) (*domain.Todo, error)
	Update(ctx context.Context, owner domain.UserID, id domain.TodoID, in domain.TodoInput, updatedAt time.Time) (*domain.Todo, error)
	Delete(ctx context.Context, owner domain.UserID, id domain.TodoID) error
}

// IdempotencyStore remembers which todo a client-supplied Idempotency-Key
// produced, so a retried create returns the original item.
type IdempotencyStore interface {
	// Lookup returns the stored todo ID, or "" when the key is unknown.
	Lookup(ctx context.Context, owner domain.UserID, key string) (domain.TodoID, error)
	Remember(ctx context.Context, owner domain.UserID, key string, id domain.TodoID) error
}
