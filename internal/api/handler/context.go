package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/todo-api/todo-service/internal/api/middleware"
	"github.com/todo-api/todo-service/internal/core/domain"
)

// callerID returns the owner the Auth middleware resolved. Reaching a
// protected handler without one means the route was wired without Auth,
// which is reported as an invalid token rather than served anonymously.
func callerID(c echo.Context) (domain.UserID, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.ID == "" {
		return "", domain.ErrTokenInvalid
	}
	return identity.ID, nil
}
