package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nhle/momentum/internal/model"
)

// AddTodoRequest is the request body for POST /api/v1/todos.
type AddTodoRequest struct {
	Title string `json:"title"`
}

// handleListTodos returns all todos, open ones first, newest first.
func (s *Server) handleListTodos(c echo.Context) error {
	todos, err := s.store.GetTodos(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return c.JSON(http.StatusOK, todos)
}

// handleAddTodo creates a todo. Submissions without a title are ignored.
func (s *Server) handleAddTodo(c echo.Context) error {
	var req AddTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.NoContent(http.StatusNoContent)
	}

	todo, err := s.store.CreateTodo(c.Request().Context(), title)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, todo)
}

// handleToggleTodo flips a todo between open and done.
func (s *Server) handleToggleTodo(c echo.Context) error {
	todo, err := s.store.ToggleTodo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// handleDeleteTodo permanently removes a todo.
func (s *Server) handleDeleteTodo(c echo.Context) error {
	if err := s.store.DeleteTodo(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
