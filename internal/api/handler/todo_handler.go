package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todo-api/todo-service/internal/api/metrics"
	"github.com/todo-api/todo-service/internal/core/domain"
	"github.com/todo-api/todo-service/internal/core/ports"
)

// TodoHandler serves the caller's own todo list. Every route sits behind
// the Auth middleware.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// Create adds a todo to the caller's list.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Client key that makes retries safe"
// @Param        body             body      todoRequest  true   "Todo fields"
// @Success      200              {object}  todoResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.IdempotencyKey = c.Request().Header.Get(headerIdempotencyKey)
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), owner, toTodoInput(req), req.IdempotencyKey)
	if err != nil {
		return err
	}

	metrics.TodosCreatedTotal.WithLabelValues(strconv.FormatBool(res.Replayed)).Inc()
	if res.Replayed {
		c.Response().Header().Set(headerIdempotentReplayed, "true")
	}
	return c.JSON(http.StatusOK, toTodoResponse(res.Todo))
}

// List returns the caller's todos, newest first.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  errorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoListResponse(todos))
}

// Get returns one of the caller's todos.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  todoResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), owner, domain.TodoID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Update replaces the editable fields of one of the caller's todos.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Todo ID"
// @Param        body  body      todoRequest  true  "Todo fields"
// @Success      200   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.service.Update(c.Request().Context(), owner, domain.TodoID(c.Param("id")), toTodoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete removes one of the caller's todos.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id   path  string  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, domain.TodoID(c.Param("id"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
