package model

import (
	"fmt"
	"time"
)

// DayFormat is the calendar-day layout used for check-ins and streaks.
// Days carry no time component.
const DayFormat = "2006-01-02"

// Habit is a recurring activity the user tracks.
type Habit struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CheckIn records that a habit was completed on a specific calendar day.
// At most one check-in exists per (habit, day) pair; un-marking a habit
// deletes the row rather than flagging it.
type CheckIn struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Day       string    `json:"day" db:"day"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Streak is the derived consecutive-completion state for a habit.
// It is created lazily on the first completion and mutated only
// through Advance.
type Streak struct {
	HabitID       string    `json:"habit_id" db:"habit_id"`
	Count         int       `json:"count" db:"count"`
	Longest       int       `json:"longest" db:"longest"`
	LastCompleted *string   `json:"last_completed,omitempty" db:"last_completed"` // YYYY-MM-DD
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Advance applies a completion event for the given day (YYYY-MM-DD).
//
// Calling it twice with the same day is a no-op, so double submissions
// cannot inflate the count. A completion on the day after LastCompleted
// extends the run; any larger gap (or a first-ever completion) restarts
// it at 1. Longest never decreases.
func (s *Streak) Advance(day string) error {
	today, err := time.Parse(DayFormat, day)
	if err != nil {
		return fmt.Errorf("parsing day %q: %w", day, err)
	}

	switch {
	case s.LastCompleted != nil && *s.LastCompleted == day:
		return nil
	case s.LastCompleted != nil && yesterday(today) == *s.LastCompleted:
		s.Count++
	default:
		s.Count = 1
	}

	if s.Count > s.Longest {
		s.Longest = s.Count
	}
	completed := day
	s.LastCompleted = &completed
	return nil
}

// yesterday returns the calendar day before t, handling month and year
// rollover (Feb 1 -> Jan 31, Jan 1 -> Dec 31).
func yesterday(t time.Time) string {
	return t.AddDate(0, 0, -1).Format(DayFormat)
}
