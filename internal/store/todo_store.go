package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/momentum/internal/model"
)

// CreateTodo inserts a new todo item.
func (s *SQLiteStore) CreateTodo(ctx context.Context, title string) (*model.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("todo title must not be empty")
	}

	todo := model.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (id, title, done, created_at) VALUES (?, ?, 0, ?)",
		todo.ID, todo.Title, todo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return &todo, nil
}

// GetTodos returns all todo items, open ones first, newest first within
// each group.
func (s *SQLiteStore) GetTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, title, done, created_at FROM todos ORDER BY done ASC, created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var t model.Todo
		var doneInt int
		if err := rows.Scan(&t.ID, &t.Title, &doneInt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		t.Done = doneInt != 0
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// ToggleTodo flips the done state of a todo and returns the new state.
func (s *SQLiteStore) ToggleTodo(ctx context.Context, id string) (*model.Todo, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET done = CASE WHEN done = 0 THEN 1 ELSE 0 END WHERE id = ?", id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggling todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}

	var t model.Todo
	var doneInt int
	err = s.db.QueryRowxContext(ctx,
		"SELECT id, title, done, created_at FROM todos WHERE id = ?", id,
	).Scan(&t.ID, &t.Title, &doneInt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}
	t.Done = doneInt != 0
	return &t, nil
}

// DeleteTodo removes a todo item by ID.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}
