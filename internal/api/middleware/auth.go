package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todo-api/todo-service/internal/api/metrics"
	"github.com/todo-api/todo-service/internal/core/domain"
)

// identityKey is the echo context key the resolved caller is stored under.
const identityKey = "identity"

// IdentityResolver turns a bearer token into the caller it was issued to.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error)
}

// Auth resolves the bearer token and injects the caller's identity into
// the context. Every failure surfaces as domain.ErrTokenInvalid.
func Auth(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.TokenRejectionsTotal.Inc()
				return err
			}

			identity, err := resolver.ResolveIdentity(c.Request().Context(), token)
			if err != nil {
				metrics.TokenRejectionsTotal.Inc()
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the caller stored by Auth.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", domain.ErrTokenInvalid)
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("%w: invalid authorization header", domain.ErrTokenInvalid)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", domain.ErrTokenInvalid)
	}
	return token, nil
}
