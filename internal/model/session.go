package model

import "time"

// Focus session status values.
const (
	SessionStatusRunning  = "running"
	SessionStatusPaused   = "paused"
	SessionStatusFinished = "finished"
)

// DefaultFocusSeconds is the standard focus interval (25 minutes).
const DefaultFocusSeconds = 25 * 60

// FocusSession is a single timed focus interval for an identity,
// optionally tied to a habit. At most one session per identity is
// running at a time; starting a new one finishes the previous.
type FocusSession struct {
	ID              string     `json:"id" db:"id"`
	Identity        string     `json:"identity" db:"identity"`
	HabitID         *string    `json:"habit_id,omitempty" db:"habit_id"`
	DurationSeconds int        `json:"duration_seconds" db:"duration_seconds"`
	Status          string     `json:"status" db:"status"`
	StartedAt       time.Time  `json:"started_at" db:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty" db:"ended_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
