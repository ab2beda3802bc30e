package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/momentum/internal/model"
)

// StartSession begins a new focus session for the identity. Any session
// still running for that identity is finished first, so at most one
// running session exists afterwards. Both writes happen in one
// transaction to keep the best-effort ordering atomic.
func (s *SQLiteStore) StartSession(ctx context.Context, identity string, durationSec int) (*model.FocusSession, error) {
	if durationSec <= 0 {
		durationSec = model.DefaultFocusSeconds
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE focus_sessions SET status = ?, ended_at = ?
		WHERE identity = ? AND status = ?`,
		model.SessionStatusFinished, now, identity, model.SessionStatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("finishing running sessions for %s: %w", identity, err)
	}

	session := model.FocusSession{
		ID:              uuid.New().String(),
		Identity:        identity,
		DurationSeconds: durationSec,
		Status:          model.SessionStatusRunning,
		StartedAt:       now,
		CreatedAt:       now,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, identity, habit_id, duration_seconds, status, started_at, ended_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL, ?)`,
		session.ID, session.Identity, session.HabitID, session.DurationSeconds,
		session.Status, session.StartedAt, session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating focus session for %s: %w", identity, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &session, nil
}

// ResetSessions finishes any running or paused sessions for the identity
// without creating a new record.
func (s *SQLiteStore) ResetSessions(ctx context.Context, identity string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE focus_sessions SET status = ?, ended_at = ?
		WHERE identity = ? AND status IN (?, ?)`,
		model.SessionStatusFinished, time.Now().UTC(), identity,
		model.SessionStatusRunning, model.SessionStatusPaused,
	)
	if err != nil {
		return fmt.Errorf("resetting sessions for %s: %w", identity, err)
	}
	return nil
}

// GetRunningSessions returns the identity's running sessions, newest first.
func (s *SQLiteStore) GetRunningSessions(ctx context.Context, identity string) ([]model.FocusSession, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, identity, habit_id, duration_seconds, status, started_at, ended_at, created_at
		FROM focus_sessions
		WHERE identity = ? AND status = ?
		ORDER BY started_at DESC`,
		identity, model.SessionStatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("querying running sessions for %s: %w", identity, err)
	}
	defer rows.Close()

	var sessions []model.FocusSession
	for rows.Next() {
		var fs model.FocusSession
		err := rows.Scan(
			&fs.ID, &fs.Identity, &fs.HabitID, &fs.DurationSeconds,
			&fs.Status, &fs.StartedAt, &fs.EndedAt, &fs.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning focus session row: %w", err)
		}
		sessions = append(sessions, fs)
	}
	return sessions, rows.Err()
}
