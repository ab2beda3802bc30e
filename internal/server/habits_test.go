package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/momentum/internal/model"
	"github.com/nhle/momentum/internal/store"
)

func addHabit(t *testing.T, s *Server, name string) string {
	t.Helper()

	rec := do(s, http.MethodPost, "/api/v1/habits", strings.NewReader(`{"name":"`+name+`"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var habit struct {
		ID string `json:"id"`
	}
	decode(t, rec, &habit)
	return habit.ID
}

func TestHandleAddHabit(t *testing.T) {
	s := newTestServer(t)

	t.Run("creates a habit", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/v1/habits", strings.NewReader(`{"name":"meditate"}`))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("empty name is ignored", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/v1/habits", strings.NewReader(`{"name":""}`))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("whitespace-only name is ignored", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/v1/habits", strings.NewReader(`{"name":"   "}`))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/v1/habits", strings.NewReader(`{"name":"  floss  "}`))
		require.Equal(t, http.StatusCreated, rec.Code)

		var habit model.Habit
		decode(t, rec, &habit)
		assert.Equal(t, "floss", habit.Name)
	})
}

func TestHandleToggleHabit(t *testing.T) {
	s := newTestServer(t)
	id := addHabit(t, s, "run")

	rec := do(s, http.MethodPost, "/api/v1/habits/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ToggleHabitResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Completed)
	assert.Equal(t, "2025-03-10", resp.Day)
	require.NotNil(t, resp.Streak)
	assert.Equal(t, 1, resp.Streak.Count)

	// Second toggle un-marks; the streak stays where it was.
	rec = do(s, http.MethodPost, "/api/v1/habits/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.False(t, resp.Completed)
	require.NotNil(t, resp.Streak)
	assert.Equal(t, 1, resp.Streak.Count)

	rec = do(s, http.MethodPost, "/api/v1/habits/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListHabits(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/v1/habits", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	id := addHabit(t, s, "walk")
	do(s, http.MethodPost, "/api/v1/habits/"+id+"/toggle", nil)

	rec = do(s, http.MethodGet, "/api/v1/habits", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var habits []store.HabitStatus
	decode(t, rec, &habits)
	require.Len(t, habits, 1)
	assert.True(t, habits[0].CheckedToday)
	require.NotNil(t, habits[0].Streak)
	assert.Equal(t, 1, habits[0].Streak.Count)
}

func TestHandleDeleteHabit(t *testing.T) {
	s := newTestServer(t)
	id := addHabit(t, s, "stretch")
	do(s, http.MethodPost, "/api/v1/habits/"+id+"/toggle", nil)

	rec := do(s, http.MethodDelete, "/api/v1/habits/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodDelete, "/api/v1/habits/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/habits/"+id+"/checkins", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListCheckIns(t *testing.T) {
	s := newTestServer(t)
	id := addHabit(t, s, "read")

	rec := do(s, http.MethodGet, "/api/v1/habits/"+id+"/checkins", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	do(s, http.MethodPost, "/api/v1/habits/"+id+"/toggle", nil)

	rec = do(s, http.MethodGet, "/api/v1/habits/"+id+"/checkins", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var checkins []struct {
		Day string `json:"day"`
	}
	decode(t, rec, &checkins)
	require.Len(t, checkins, 1)
	assert.Equal(t, "2025-03-10", checkins[0].Day)
}
