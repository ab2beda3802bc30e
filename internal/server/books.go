package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nhle/momentum/internal/model"
	"github.com/nhle/momentum/internal/store"
)

// RecommendResponse is the response body for GET /api/v1/books/recommend.
type RecommendResponse struct {
	// TopPick is the first result, or nil when nothing matched.
	TopPick *model.Book  `json:"top_pick,omitempty"`
	Results []model.Book `json:"results"`
	// SavedIDs marks which of the shown books are already in the
	// identity's library.
	SavedIDs []string `json:"saved_ids"`
}

// BookDetailResponse is the response body for GET /api/v1/books/:id.
type BookDetailResponse struct {
	Book model.Book `json:"book"`
	// Tags is the book's tag string split into individual tags.
	Tags  []string       `json:"tags"`
	State model.UserBook `json:"state"`
}

// UpdateBookStateRequest is the request body for PUT /api/v1/books/:id/state.
// Progress and Rating arrive as strings because they come from form
// fields; malformed numbers are ignored rather than rejected. Absent
// fields leave the stored value unchanged.
type UpdateBookStateRequest struct {
	Status   *string `json:"status"`
	Progress *string `json:"progress"`
	Rating   *string `json:"rating"`
	Notes    *string `json:"notes"`
}

// handleRecommend answers a recommendation query. Goal and mood must be
// recognized enum values when present; minutes is forgiving: anything
// non-numeric means "no time filter".
func (s *Server) handleRecommend(c echo.Context) error {
	ident := identity(c)
	filter := store.RecommendFilter{
		ExcludeFinishedFor: ident,
		Limit:              s.config.Books.RecommendLimit,
	}

	if goal := c.QueryParam("goal"); goal != "" {
		if !model.ValidGoal(goal) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown goal "+strconv.Quote(goal))
		}
		filter.Goal = &goal
	}
	if mood := c.QueryParam("mood"); mood != "" {
		if !model.ValidMood(mood) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown mood "+strconv.Quote(mood))
		}
		filter.Mood = &mood
	}
	if minutes := c.QueryParam("minutes"); minutes != "" {
		if m, err := strconv.Atoi(minutes); err == nil {
			filter.Minutes = &m
		}
	}

	results, err := s.store.RecommendBooks(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}

	saved, err := s.store.GetSavedBookIDs(c.Request().Context(), ident)
	if err != nil {
		return httpError(err)
	}

	resp := RecommendResponse{Results: results, SavedIDs: []string{}}
	if resp.Results == nil {
		resp.Results = []model.Book{}
	}
	if len(results) > 0 {
		resp.TopPick = &results[0]
	}
	for id := range saved {
		resp.SavedIDs = append(resp.SavedIDs, id)
	}

	return c.JSON(http.StatusOK, resp)
}

// handleLibrary returns the identity's saved books with reading state.
func (s *Server) handleLibrary(c echo.Context) error {
	entries, err := s.store.GetLibrary(c.Request().Context(), identity(c))
	if err != nil {
		return httpError(err)
	}
	if entries == nil {
		entries = []model.LibraryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// handleBookDetail returns a book plus the identity's state for it,
// creating the saved-book row on first view.
func (s *Server) handleBookDetail(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return httpError(err)
	}
	state, err := s.store.SaveUserBook(ctx, identity(c), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, BookDetailResponse{Book: *book, Tags: book.TagList(), State: *state})
}

// handleSaveBook adds a book to the identity's library (no-op if
// already saved).
func (s *Server) handleSaveBook(c echo.Context) error {
	state, err := s.store.SaveUserBook(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// handleUpdateBookState persists the identity's reading state for a
// book. Status must be a recognized value; progress is clamped to
// [0, 100]; rating is clamped to [1, 5], with empty or non-numeric
// input stored as absent.
func (s *Server) handleUpdateBookState(c echo.Context) error {
	var req UpdateBookStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status != nil && !model.ValidBookStatus(*req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status "+strconv.Quote(*req.Status))
	}

	ctx := c.Request().Context()
	current, err := s.store.SaveUserBook(ctx, identity(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	ub := *current
	if req.Status != nil {
		ub.Status = *req.Status
	}
	if req.Progress != nil {
		if p, err := strconv.Atoi(*req.Progress); err == nil {
			ub.Progress = p
		}
	}
	if req.Rating != nil {
		ub.Rating = parseRating(*req.Rating)
	}
	if req.Notes != nil {
		ub.Notes = *req.Notes
	}

	state, err := s.store.UpdateUserBook(ctx, ub)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// parseRating turns form input into an optional 1-5 rating. Empty and
// non-numeric input mean "no rating"; out-of-range values are clamped.
func parseRating(input string) *int {
	if input == "" {
		return nil
	}
	r, err := strconv.Atoi(input)
	if err != nil {
		return nil
	}
	if r < 1 {
		r = 1
	}
	if r > 5 {
		r = 5
	}
	return &r
}
