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

// CreateHabit inserts a new habit. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateHabit(ctx context.Context, habit model.Habit) (*model.Habit, error) {
	if strings.TrimSpace(habit.Name) == "" {
		return nil, fmt.Errorf("habit name must not be empty")
	}
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	habit.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO habits (id, name, created_at) VALUES (?, ?, ?)",
		habit.ID, habit.Name, habit.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating habit: %w", err)
	}
	return &habit, nil
}

// GetHabits retrieves all habits with their dashboard state for the given
// day: whether each habit is checked in on that day, and its streak.
func (s *SQLiteStore) GetHabits(ctx context.Context, day string) ([]HabitStatus, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, created_at FROM habits ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("querying habits: %w", err)
	}
	defer rows.Close()

	var habits []HabitStatus
	for rows.Next() {
		var h HabitStatus
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning habit row: %w", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	checked, err := s.checkedHabitIDs(ctx, day)
	if err != nil {
		return nil, err
	}

	for i := range habits {
		habits[i].CheckedToday = checked[habits[i].ID]

		streak, err := s.GetStreak(ctx, habits[i].ID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		habits[i].Streak = streak
	}

	return habits, nil
}

// checkedHabitIDs returns the set of habit IDs with a check-in on day.
func (s *SQLiteStore) checkedHabitIDs(ctx context.Context, day string) (map[string]bool, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		"SELECT habit_id FROM checkins WHERE day = ?", day,
	)
	if err != nil {
		return nil, fmt.Errorf("querying check-ins for %s: %w", day, err)
	}

	checked := make(map[string]bool, len(ids))
	for _, id := range ids {
		checked[id] = true
	}
	return checked, nil
}

// GetHabitByID retrieves a single habit by ID.
func (s *SQLiteStore) GetHabitByID(ctx context.Context, id string) (*model.Habit, error) {
	var habit model.Habit
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, name, created_at FROM habits WHERE id = ?", id,
	).Scan(&habit.ID, &habit.Name, &habit.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting habit %s: %w", id, err)
	}
	return &habit, nil
}

// DeleteHabit removes a habit together with its check-ins and streak in
// one transaction, so no orphaned rows survive. The schema's ON DELETE
// CASCADE would cover this too; the explicit deletes keep the invariant
// independent of the FK pragma.
func (s *SQLiteStore) DeleteHabit(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkins WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("deleting check-ins for habit %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM streaks WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("deleting streak for habit %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// ToggleCheckIn flips the check-in state of a habit for the given day.
// Creating a check-in advances the habit's streak; removing one leaves
// the streak untouched. Check-in and streak are persisted in the same
// transaction, so a storage failure exposes no partial state.
func (s *SQLiteStore) ToggleCheckIn(ctx context.Context, habitID, day string) (*ToggleResult, error) {
	if _, err := s.GetHabitByID(ctx, habitID); err != nil {
		return nil, err
	}
	if _, err := time.Parse(model.DayFormat, day); err != nil {
		return nil, fmt.Errorf("parsing day %q: %w", day, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var checkinID string
	err = tx.GetContext(ctx, &checkinID,
		"SELECT id FROM checkins WHERE habit_id = ? AND day = ?", habitID, day,
	)
	switch {
	case err == nil:
		// Un-mark: remove the check-in. The streak is intentionally not
		// rolled back (forward-only updates).
		if _, err := tx.ExecContext(ctx, "DELETE FROM checkins WHERE id = ?", checkinID); err != nil {
			return nil, fmt.Errorf("deleting check-in %s: %w", checkinID, err)
		}
		streak, err := getStreak(ctx, tx, habitID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return &ToggleResult{Completed: false, Streak: streak}, nil

	case errors.Is(err, sql.ErrNoRows):
		// Mark: create the check-in, then advance the streak.
	default:
		return nil, fmt.Errorf("checking existing check-in: %w", err)
	}

	// INSERT OR IGNORE leans on the UNIQUE(habit_id, day) index so a
	// concurrent double-submission cannot create two rows.
	result, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO checkins (id, habit_id, day, created_at) VALUES (?, ?, ?, ?)",
		uuid.New().String(), habitID, day, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating check-in: %w", err)
	}
	inserted, _ := result.RowsAffected()

	streak, err := getStreak(ctx, tx, habitID)
	if errors.Is(err, ErrNotFound) {
		streak = &model.Streak{HabitID: habitID}
	} else if err != nil {
		return nil, err
	}

	if inserted > 0 {
		if err := streak.Advance(day); err != nil {
			return nil, err
		}
		streak.UpdatedAt = time.Now().UTC()
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO streaks (habit_id, count, longest, last_completed, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			streak.HabitID, streak.Count, streak.Longest, streak.LastCompleted, streak.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("saving streak for habit %s: %w", habitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &ToggleResult{Completed: true, Streak: streak}, nil
}

// GetCheckIns returns a habit's check-in history, newest day first.
func (s *SQLiteStore) GetCheckIns(ctx context.Context, habitID string) ([]model.CheckIn, error) {
	if _, err := s.GetHabitByID(ctx, habitID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, habit_id, day, created_at FROM checkins WHERE habit_id = ? ORDER BY day DESC",
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying check-ins: %w", err)
	}
	defer rows.Close()

	var checkins []model.CheckIn
	for rows.Next() {
		var c model.CheckIn
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Day, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning check-in row: %w", err)
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// GetStreak retrieves the streak for a habit. Returns ErrNotFound if the
// habit has never been completed.
func (s *SQLiteStore) GetStreak(ctx context.Context, habitID string) (*model.Streak, error) {
	return getStreak(ctx, s.db, habitID)
}

// queryer covers both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func getStreak(ctx context.Context, q queryer, habitID string) (*model.Streak, error) {
	var streak model.Streak
	err := q.GetContext(ctx, &streak, `
		SELECT habit_id, count, longest, last_completed, updated_at
		FROM streaks WHERE habit_id = ?`, habitID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("streak for habit %s: %w", habitID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting streak for habit %s: %w", habitID, err)
	}
	return &streak, nil
}
