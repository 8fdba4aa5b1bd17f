package ports

import (
	"context"
	"time"

	"github.com/todo-api/todo-service/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Verify never returns an
// error: a malformed hash and a wrong password both yield false.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) bool
}

// TokenResult is what a successful login hands back to the client.
type TokenResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AuthService is the authentication surface used by the transport layer.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenResult, error)
	ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error)
}
