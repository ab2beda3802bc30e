package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/momentum/internal/model"
	"github.com/nhle/momentum/internal/store"
	"github.com/nhle/momentum/tests/testutil"
)

func TestCreateHabit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	habit, err := s.CreateHabit(ctx, model.Habit{Name: "meditate"})
	require.NoError(t, err)
	assert.NotEmpty(t, habit.ID)
	assert.Equal(t, "meditate", habit.Name)

	_, err = s.CreateHabit(ctx, model.Habit{Name: "   "})
	assert.Error(t, err)
}

func TestToggleCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("first toggle creates check-in and streak", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		habit, err := s.CreateHabit(ctx, model.Habit{Name: "run"})
		require.NoError(t, err)

		result, err := s.ToggleCheckIn(ctx, habit.ID, "2025-03-10")
		require.NoError(t, err)
		assert.True(t, result.Completed)
		require.NotNil(t, result.Streak)
		assert.Equal(t, 1, result.Streak.Count)
		assert.Equal(t, 1, result.Streak.Longest)
	})

	t.Run("second toggle removes the check-in but keeps the streak", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		habit, err := s.CreateHabit(ctx, model.Habit{Name: "run"})
		require.NoError(t, err)

		_, err = s.ToggleCheckIn(ctx, habit.ID, "2025-03-10")
		require.NoError(t, err)

		result, err := s.ToggleCheckIn(ctx, habit.ID, "2025-03-10")
		require.NoError(t, err)
		assert.False(t, result.Completed)

		checkins, err := s.GetCheckIns(ctx, habit.ID)
		require.NoError(t, err)
		assert.Empty(t, checkins)

		// Forward-only: the streak does not roll back on un-mark.
		streak, err := s.GetStreak(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, streak.Count)
	})

	t.Run("consecutive days build the streak across re-loads", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		habit, err := s.CreateHabit(ctx, model.Habit{Name: "read"})
		require.NoError(t, err)

		for _, day := range []string{"2025-01-30", "2025-01-31", "2025-02-01"} {
			_, err := s.ToggleCheckIn(ctx, habit.ID, day)
			require.NoError(t, err)
		}

		streak, err := s.GetStreak(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, streak.Count)
		assert.Equal(t, 3, streak.Longest)
		require.NotNil(t, streak.LastCompleted)
		assert.Equal(t, "2025-02-01", *streak.LastCompleted)
	})

	t.Run("re-marking a day after un-marking does not double count", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		habit, err := s.CreateHabit(ctx, model.Habit{Name: "read"})
		require.NoError(t, err)

		_, err = s.ToggleCheckIn(ctx, habit.ID, "2025-03-10")
		require.NoError(t, err)
		_, err = s.ToggleCheckIn(ctx, habit.ID, "2025-03-10")
		require.NoError(t, err)
		result, err := s.ToggleCheckIn(ctx, habit.ID, "2025-03-10")
		require.NoError(t, err)

		assert.True(t, result.Completed)
		assert.Equal(t, 1, result.Streak.Count)
	})

	t.Run("unknown habit", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		_, err := s.ToggleCheckIn(ctx, "nope", "2025-03-10")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("malformed day", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		habit, err := s.CreateHabit(ctx, model.Habit{Name: "run"})
		require.NoError(t, err)

		_, err = s.ToggleCheckIn(ctx, habit.ID, "10.03.2025")
		assert.Error(t, err)
	})
}

func TestDeleteHabitCascades(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	habit, err := s.CreateHabit(ctx, model.Habit{Name: "stretch"})
	require.NoError(t, err)
	keep, err := s.CreateHabit(ctx, model.Habit{Name: "journal"})
	require.NoError(t, err)

	for _, day := range []string{"2025-03-10", "2025-03-11"} {
		_, err := s.ToggleCheckIn(ctx, habit.ID, day)
		require.NoError(t, err)
		_, err = s.ToggleCheckIn(ctx, keep.ID, day)
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteHabit(ctx, habit.ID))

	_, err = s.GetHabitByID(ctx, habit.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetStreak(ctx, habit.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCheckIns(ctx, habit.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The other habit is untouched.
	streak, err := s.GetStreak(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Count)

	assert.ErrorIs(t, s.DeleteHabit(ctx, habit.ID), store.ErrNotFound)
}

func TestGetHabitsDashboard(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	done, err := s.CreateHabit(ctx, model.Habit{Name: "walk"})
	require.NoError(t, err)
	pending, err := s.CreateHabit(ctx, model.Habit{Name: "write"})
	require.NoError(t, err)

	_, err = s.ToggleCheckIn(ctx, done.ID, "2025-03-10")
	require.NoError(t, err)

	habits, err := s.GetHabits(ctx, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, habits, 2)

	byID := map[string]store.HabitStatus{}
	for _, h := range habits {
		byID[h.ID] = h
	}

	assert.True(t, byID[done.ID].CheckedToday)
	require.NotNil(t, byID[done.ID].Streak)
	assert.Equal(t, 1, byID[done.ID].Streak.Count)

	assert.False(t, byID[pending.ID].CheckedToday)
	assert.Nil(t, byID[pending.ID].Streak)
}
