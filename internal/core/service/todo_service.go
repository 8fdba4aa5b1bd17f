package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/todo-api/todo-service/internal/core/domain"
	"github.com/todo-api/todo-service/internal/core/ports"
)

// listLimit caps how many todos a single list call returns.
const listLimit = 1000

type TodoService struct {
	repo ports.TodoRepository
	idem ports.IdempotencyStore
	log  zerolog.Logger
	now  func() time.Time
}

// NewTodoService returns a TodoService. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewTodoService(repo ports.TodoRepository, idem ports.IdempotencyStore, log zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, idem: idem, log: log, now: time.Now}
}

// Create stores a new todo for owner. If idempotencyKey was already used by
// the same owner and its todo still exists, that todo is returned instead.
func (s *TodoService) Create(ctx context.Context, owner domain.UserID, in domain.TodoInput, idempotencyKey string) (*ports.CreateTodoResult, error) {
	todo, err := domain.NewTodo(owner, in, s.now().UTC())
	if err != nil {
		return nil, err
	}

	useKey := idempotencyKey != "" && s.idem != nil
	if useKey {
		if existing := s.replay(ctx, owner, idempotencyKey); existing != nil {
			return &ports.CreateTodoResult{Todo: existing, Replayed: true}, nil
		}
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", owner.String()).Msg("failed to create todo")
		return nil, err
	}

	if useKey {
		if err := s.idem.Remember(ctx, owner, idempotencyKey, created.ID); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.log.Info().Str("todo_id", created.ID.String()).Str("user_id", owner.String()).Msg("todo created")
	return &ports.CreateTodoResult{Todo: created}, nil
}

// replay returns the todo previously created under key, or nil.
func (s *TodoService) replay(ctx context.Context, owner domain.UserID, key string) *domain.Todo {
	id, err := s.idem.Lookup(ctx, owner, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if id == "" {
		return nil
	}

	existing, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("todo_id", id.String()).Msg("idempotent replay lookup failed")
		}
		return nil
	}

	s.log.Info().Str("idempotency_key", key).Str("todo_id", id.String()).Msg("idempotent replay")
	return existing
}

func (s *TodoService) List(ctx context.Context, owner domain.UserID) ([]*domain.Todo, error) {
	return s.repo.List(ctx, owner, listLimit)
}

func (s *TodoService) Get(ctx context.Context, owner domain.UserID, id domain.TodoID) (*domain.Todo, error) {
	return s.repo.Get(ctx, owner, id)
}

// Update replaces the editable fields of an owned todo.
func (s *TodoService) Update(ctx context.Context, owner domain.UserID, id domain.TodoID, in domain.TodoInput) (*domain.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, owner, id, in, s.now().UTC())
}

func (s *TodoService) Delete(ctx context.Context, owner domain.UserID, id domain.TodoID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return err
	}
	s.log.Info().Str("todo_id", id.String()).Str("user_id", owner.String()).Msg("todo deleted")
	return nil
}
