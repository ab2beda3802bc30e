package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/momentum/internal/model"
)

func addTodo(t *testing.T, s *Server, title string) string {
	t.Helper()

	rec := do(s, http.MethodPost, "/api/v1/todos", strings.NewReader(`{"title":"`+title+`"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var todo model.Todo
	decode(t, rec, &todo)
	return todo.ID
}

func TestHandleAddTodo(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPost, "/api/v1/todos", strings.NewReader(`{"title":"water the plants"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var todo model.Todo
	decode(t, rec, &todo)
	assert.Equal(t, "water the plants", todo.Title)
	assert.False(t, todo.Done)

	rec = do(s, http.MethodPost, "/api/v1/todos", strings.NewReader(`{"title":""}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodPost, "/api/v1/todos", strings.NewReader(`{"title":"  \t "}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleToggleTodo(t *testing.T) {
	s := newTestServer(t)
	id := addTodo(t, s, "file taxes")

	rec := do(s, http.MethodPost, "/api/v1/todos/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var todo model.Todo
	decode(t, rec, &todo)
	assert.True(t, todo.Done)

	rec = do(s, http.MethodPost, "/api/v1/todos/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &todo)
	assert.False(t, todo.Done)

	rec = do(s, http.MethodPost, "/api/v1/todos/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListTodos(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/v1/todos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	first := addTodo(t, s, "first")
	addTodo(t, s, "second")
	do(s, http.MethodPost, "/api/v1/todos/"+first+"/toggle", nil)

	rec = do(s, http.MethodGet, "/api/v1/todos", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var todos []model.Todo
	decode(t, rec, &todos)
	require.Len(t, todos, 2)
	// Open items come before done ones.
	assert.Equal(t, "second", todos[0].Title)
	assert.True(t, todos[1].Done)
}

func TestHandleDeleteTodo(t *testing.T) {
	s := newTestServer(t)
	id := addTodo(t, s, "expire")

	rec := do(s, http.MethodDelete, "/api/v1/todos/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodDelete, "/api/v1/todos/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
