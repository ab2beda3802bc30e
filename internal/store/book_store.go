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

// minutesWindow is the tolerance around a requested minutes-per-day
// figure: a target of 20 matches books expecting 10 to 30 minutes.
const minutesWindow = 10

// UpsertBook inserts or replaces a catalogue book. Generates a UUID if
// ID is empty.
func (s *SQLiteStore) UpsertBook(ctx context.Context, book model.Book) (*model.Book, error) {
	if strings.TrimSpace(book.Title) == "" {
		return nil, fmt.Errorf("book title must not be empty")
	}
	if !model.ValidGoal(book.Goal) {
		return nil, fmt.Errorf("unknown goal %q", book.Goal)
	}
	if !model.ValidMood(book.Mood) {
		return nil, fmt.Errorf("unknown mood %q", book.Mood)
	}
	if book.ID == "" {
		book.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO books (id, title, author, description, goal, mood, minutes_per_day, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, book.Description,
		book.Goal, book.Mood, book.MinutesPerDay, book.Tags,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting book %s: %w", book.ID, err)
	}
	return &book, nil
}

// GetBookByID retrieves a single catalogue book.
func (s *SQLiteStore) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := s.db.GetContext(ctx, &book, `
		SELECT id, title, author, description, goal, mood, minutes_per_day, tags
		FROM books WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting book %s: %w", id, err)
	}
	return &book, nil
}

// RecommendBooks returns catalogue books matching the filter, in
// catalogue order. The first entry is the top pick.
func (s *SQLiteStore) RecommendBooks(ctx context.Context, filter RecommendFilter) ([]model.Book, error) {
	var conditions []string
	var args []interface{}

	if filter.Goal != nil {
		conditions = append(conditions, "goal = ?")
		args = append(args, *filter.Goal)
	}
	if filter.Mood != nil {
		conditions = append(conditions, "mood = ?")
		args = append(args, *filter.Mood)
	}
	if filter.Minutes != nil {
		low := *filter.Minutes - minutesWindow
		if low < 0 {
			low = 0
		}
		conditions = append(conditions, "minutes_per_day BETWEEN ? AND ?")
		args = append(args, low, *filter.Minutes+minutesWindow)
	}
	if filter.ExcludeFinishedFor != "" {
		conditions = append(conditions,
			"id NOT IN (SELECT book_id FROM user_books WHERE identity = ? AND status = ?)")
		args = append(args, filter.ExcludeFinishedFor, model.BookStatusFinished)
	}

	query := "SELECT id, title, author, description, goal, mood, minutes_per_day, tags FROM books"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rowid"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	var books []model.Book
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("querying recommendations: %w", err)
	}
	return books, nil
}

// SaveUserBook adds a book to the identity's library. If the book is
// already saved the existing state is returned unchanged (get-or-create;
// the UNIQUE(identity, book_id) index absorbs duplicate submissions).
func (s *SQLiteStore) SaveUserBook(ctx context.Context, identity, bookID string) (*model.UserBook, error) {
	if _, err := s.GetBookByID(ctx, bookID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_books (id, identity, book_id, status, progress, notes, saved_at, updated_at)
		VALUES (?, ?, ?, ?, 0, '', ?, ?)`,
		uuid.New().String(), identity, bookID, model.BookStatusWant, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("saving book %s for %s: %w", bookID, identity, err)
	}

	return s.getUserBook(ctx, identity, bookID)
}

// UpdateUserBook persists identity-specific reading state. The row is
// created first if the book was never saved.
func (s *SQLiteStore) UpdateUserBook(ctx context.Context, ub model.UserBook) (*model.UserBook, error) {
	if !model.ValidBookStatus(ub.Status) {
		return nil, fmt.Errorf("unknown status %q", ub.Status)
	}
	if _, err := s.SaveUserBook(ctx, ub.Identity, ub.BookID); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE user_books SET status = ?, progress = ?, rating = ?, notes = ?, updated_at = ?
		WHERE identity = ? AND book_id = ?`,
		ub.Status, clampProgress(ub.Progress), ub.Rating, ub.Notes, time.Now().UTC(),
		ub.Identity, ub.BookID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating saved book %s for %s: %w", ub.BookID, ub.Identity, err)
	}

	return s.getUserBook(ctx, ub.Identity, ub.BookID)
}

func (s *SQLiteStore) getUserBook(ctx context.Context, identity, bookID string) (*model.UserBook, error) {
	var ub model.UserBook
	err := s.db.GetContext(ctx, &ub, `
		SELECT id, identity, book_id, status, progress, rating, notes, saved_at, updated_at
		FROM user_books WHERE identity = ? AND book_id = ?`, identity, bookID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved book %s for %s: %w", bookID, identity, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting saved book %s for %s: %w", bookID, identity, err)
	}
	return &ub, nil
}

// GetLibrary returns the identity's saved books joined with their
// catalogue records, most recently saved first.
func (s *SQLiteStore) GetLibrary(ctx context.Context, identity string) ([]model.LibraryEntry, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT ub.id, ub.identity, ub.book_id, ub.status, ub.progress, ub.rating, ub.notes,
		       ub.saved_at, ub.updated_at,
		       b.id, b.title, b.author, b.description, b.goal, b.mood, b.minutes_per_day, b.tags
		FROM user_books ub
		INNER JOIN books b ON b.id = ub.book_id
		WHERE ub.identity = ?
		ORDER BY ub.saved_at DESC`, identity,
	)
	if err != nil {
		return nil, fmt.Errorf("querying library for %s: %w", identity, err)
	}
	defer rows.Close()

	var entries []model.LibraryEntry
	for rows.Next() {
		var e model.LibraryEntry
		err := rows.Scan(
			&e.ID, &e.Identity, &e.BookID, &e.Status, &e.Progress, &e.Rating, &e.Notes,
			&e.SavedAt, &e.UpdatedAt,
			&e.Book.ID, &e.Book.Title, &e.Book.Author, &e.Book.Description,
			&e.Book.Goal, &e.Book.Mood, &e.Book.MinutesPerDay, &e.Book.Tags,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning library row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetSavedBookIDs returns the set of book IDs the identity has saved,
// used to mark cards as already in the library.
func (s *SQLiteStore) GetSavedBookIDs(ctx context.Context, identity string) (map[string]bool, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		"SELECT book_id FROM user_books WHERE identity = ?", identity,
	)
	if err != nil {
		return nil, fmt.Errorf("querying saved book ids for %s: %w", identity, err)
	}

	saved := make(map[string]bool, len(ids))
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

// clampProgress bounds reading progress to [0, 100].
func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
