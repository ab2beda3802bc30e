package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nhle/momentum/internal/model"
	"github.com/nhle/momentum/internal/store"
)

// AddHabitRequest is the request body for POST /api/v1/habits.
type AddHabitRequest struct {
	Name string `json:"name"`
}

// ToggleHabitResponse is the response body for POST /api/v1/habits/:id/toggle.
type ToggleHabitResponse struct {
	HabitID   string        `json:"habit_id"`
	Day       string        `json:"day"`
	Completed bool          `json:"completed"`
	Streak    *model.Streak `json:"streak,omitempty"`
}

// handleListHabits returns all habits with their streaks and whether
// each one is checked in today (the dashboard view).
func (s *Server) handleListHabits(c echo.Context) error {
	habits, err := s.store.GetHabits(c.Request().Context(), s.today())
	if err != nil {
		return httpError(err)
	}
	if habits == nil {
		habits = []store.HabitStatus{}
	}
	return c.JSON(http.StatusOK, habits)
}

// handleAddHabit creates a new habit. Submissions with an empty name are
// ignored, mirroring the forgiving form handling of the dashboard.
func (s *Server) handleAddHabit(c echo.Context) error {
	var req AddHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.NoContent(http.StatusNoContent)
	}

	habit, err := s.store.CreateHabit(c.Request().Context(), model.Habit{Name: name})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, habit)
}

// handleDeleteHabit deletes a habit and all of its check-ins and streak
// state.
func (s *Server) handleDeleteHabit(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.DeleteHabit(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	s.logger.Info("habit deleted", zap.String("habit_id", id))
	return c.NoContent(http.StatusNoContent)
}

// handleToggleHabit toggles today's check-in for a habit. Creating the
// check-in advances the streak; removing it leaves the streak as is.
func (s *Server) handleToggleHabit(c echo.Context) error {
	id := c.Param("id")
	day := s.today()

	result, err := s.store.ToggleCheckIn(c.Request().Context(), id, day)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ToggleHabitResponse{
		HabitID:   id,
		Day:       day,
		Completed: result.Completed,
		Streak:    result.Streak,
	})
}

// handleListCheckIns returns a habit's check-in history.
func (s *Server) handleListCheckIns(c echo.Context) error {
	checkins, err := s.store.GetCheckIns(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if checkins == nil {
		checkins = []model.CheckIn{}
	}
	return c.JSON(http.StatusOK, checkins)
}
