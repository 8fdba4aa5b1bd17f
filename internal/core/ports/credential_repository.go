package ports

import (
	"context"

	"github.com/todo-api/todo-service/internal/core/domain"
)

// CredentialRepository persists credential records. Implementations must
// enforce username uniqueness at the storage level and report a conflicting
// insert as domain.ErrDuplicateIdentity.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
