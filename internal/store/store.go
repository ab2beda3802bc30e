package store

import (
	"context"
	"errors"

	"github.com/nhle/momentum/internal/model"
)

// ErrNotFound is returned when a referenced entity does not exist.
// Callers should test with errors.Is.
var ErrNotFound = errors.New("not found")

// RecommendFilter controls the book recommendation query. Nil fields
// mean "no restriction".
type RecommendFilter struct {
	Goal *string // exact match on goal
	Mood *string // exact match on mood

	// Minutes restricts results to books whose minutes_per_day falls
	// within [Minutes-10, Minutes+10], floored at 0.
	Minutes *int

	// ExcludeFinishedFor drops books the identity already finished.
	ExcludeFinishedFor string

	Limit int
}

// ToggleResult describes the outcome of toggling a habit's check-in.
type ToggleResult struct {
	// Completed is true when the toggle created a check-in, false when
	// it removed one.
	Completed bool
	// Streak is the habit's streak after the toggle. Nil when the habit
	// has never been completed.
	Streak *model.Streak
}

// HabitStatus is a habit joined with its dashboard state.
type HabitStatus struct {
	model.Habit
	CheckedToday bool          `json:"checked_today"`
	Streak       *model.Streak `json:"streak,omitempty"`
}

// Store defines the persistence interface for habits, streaks, books,
// focus sessions, and todos.
type Store interface {
	Close() error

	// === Habits & check-ins ===

	CreateHabit(ctx context.Context, habit model.Habit) (*model.Habit, error)
	GetHabits(ctx context.Context, day string) ([]HabitStatus, error)
	GetHabitByID(ctx context.Context, id string) (*model.Habit, error)
	DeleteHabit(ctx context.Context, id string) error
	ToggleCheckIn(ctx context.Context, habitID, day string) (*ToggleResult, error)
	GetCheckIns(ctx context.Context, habitID string) ([]model.CheckIn, error)
	GetStreak(ctx context.Context, habitID string) (*model.Streak, error)

	// === Books & library ===

	UpsertBook(ctx context.Context, book model.Book) (*model.Book, error)
	GetBookByID(ctx context.Context, id string) (*model.Book, error)
	RecommendBooks(ctx context.Context, filter RecommendFilter) ([]model.Book, error)
	SaveUserBook(ctx context.Context, identity, bookID string) (*model.UserBook, error)
	UpdateUserBook(ctx context.Context, ub model.UserBook) (*model.UserBook, error)
	GetLibrary(ctx context.Context, identity string) ([]model.LibraryEntry, error)
	GetSavedBookIDs(ctx context.Context, identity string) (map[string]bool, error)

	// === Focus sessions ===

	StartSession(ctx context.Context, identity string, durationSec int) (*model.FocusSession, error)
	ResetSessions(ctx context.Context, identity string) error
	GetRunningSessions(ctx context.Context, identity string) ([]model.FocusSession, error)

	// === Todos ===

	CreateTodo(ctx context.Context, title string) (*model.Todo, error)
	GetTodos(ctx context.Context) ([]model.Todo, error)
	ToggleTodo(ctx context.Context, id string) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}
