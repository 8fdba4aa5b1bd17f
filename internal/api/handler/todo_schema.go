package handler

import (
	"time"

	"github.com/todo-api/todo-service/internal/core/domain"
)

// headerIdempotencyKey lets clients retry POST /todos without creating duplicates.
const headerIdempotencyKey = "Idempotency-Key"

// headerIdempotentReplayed marks a response served from an earlier create.
const headerIdempotentReplayed = "Idempotent-Replayed"

type todoRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Completed   bool    `json:"completed"`

	IdempotencyKey string `json:"-" validate:"max=128"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- Request → Service input ---

func toTodoInput(req todoRequest) domain.TodoInput {
	return domain.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
}

// --- Service result → HTTP response ---

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.OwnerID.String(),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func toTodoListResponse(todos []*domain.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}
