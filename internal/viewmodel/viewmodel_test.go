package viewmodel

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/gymclock"
	"github.com/mrlokans/gymclock/internal/timer"
)

// 2024-01-01 was a Monday.
var monday = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func setupViewModel(t *testing.T, wrap func(Repository) Repository) (*ViewModel, *gymclock.Repository) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_viewmodel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := gymclock.NewRepository(db)
	var vmRepo Repository = repo
	if wrap != nil {
		vmRepo = wrap(repo)
	}

	vm := New(vmRepo, timer.New(), WithClock(func() time.Time { return monday }))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, vm.Start(ctx))
	t.Cleanup(func() {
		cancel()
		<-vm.Done()
	})
	return vm, repo
}

func waitFor(t *testing.T, vm *ViewModel, cond func(UIState) bool) UIState {
	t.Helper()
	require.Eventually(t, func() bool { return cond(vm.State()) }, 3*time.Second, 10*time.Millisecond)
	return vm.State()
}

func loaded(s UIState) bool { return !s.IsLoading }

func TestViewModel_InitialLoad(t *testing.T) {
	vm, _ := setupViewModel(t, nil)

	state := waitFor(t, vm, loaded)
	assert.Equal(t, "Monday", state.Today)
	assert.Len(t, state.AllExercises, 48)
	assert.Len(t, state.PredefinedSplits, 2)
	assert.Nil(t, state.TodaySchedule)
	assert.Nil(t, state.TodayGoal)
	assert.Empty(t, state.TodayWorkouts)
	assert.Empty(t, state.WeekSchedule)
	assert.Empty(t, state.RecentLogs)
	assert.Empty(t, state.ErrorMessage)
}

func TestViewModel_StartsLoading(t *testing.T) {
	vm := New(nil, timer.New())
	assert.True(t, vm.State().IsLoading)
}

func TestViewModel_UpdateScheduleAndGoal(t *testing.T) {
	vm, _ := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	require.NoError(t, vm.UpdateSchedule(ctx, "Monday", "Push"))
	require.NoError(t, vm.UpdateGoal(ctx, "Monday", 12, 40))
	require.NoError(t, vm.UpdateSchedule(ctx, "Tuesday", "Pull"))

	state := waitFor(t, vm, func(s UIState) bool {
		return s.TodaySchedule != nil && s.TodayGoal != nil
	})
	assert.Equal(t, "Push", state.TodaySchedule.Plan)
	assert.Equal(t, 12, state.TodayGoal.Reps)
	assert.Equal(t, 40, state.TodayGoal.Weight)
}

func TestViewModel_ApplySplit(t *testing.T) {
	vm, repo := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	result, err := vm.ApplySplit(ctx, "ppl")
	require.NoError(t, err)
	assert.Equal(t, 30, result.WorkoutsInserted)

	state := waitFor(t, vm, func(s UIState) bool {
		return s.TodaySchedule != nil && len(s.TodayWorkouts) == 5
	})
	assert.Equal(t, "Push", state.TodaySchedule.Plan)
	assert.Equal(t, "Bench Press", state.TodayWorkouts[0].ExerciseName)

	sunday, err := repo.GetSchedule(ctx, "Sunday")
	require.NoError(t, err)
	assert.Equal(t, entities.PlanRest, sunday.Plan)
}

func TestViewModel_AddWorkoutAppends(t *testing.T) {
	vm, repo := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	squat, err := repo.GetExerciseByName(ctx, "Squats")
	require.NoError(t, err)
	press, err := repo.GetExerciseByName(ctx, "Overhead Press")
	require.NoError(t, err)

	form := ParsedWorkout{Sets: 5, Reps: 5, Weight: 100, RestTimeSeconds: 180}
	require.NoError(t, vm.AddWorkout(ctx, squat.ID, form))
	waitFor(t, vm, func(s UIState) bool { return len(s.TodayWorkouts) == 1 })
	require.NoError(t, vm.AddWorkout(ctx, press.ID, form))

	state := waitFor(t, vm, func(s UIState) bool { return len(s.TodayWorkouts) == 2 })
	assert.Equal(t, 0, state.TodayWorkouts[0].OrderInWorkout)
	assert.Equal(t, "Squats", state.TodayWorkouts[0].ExerciseName)
	assert.Equal(t, 1, state.TodayWorkouts[1].OrderInWorkout)
	assert.Equal(t, "Monday", state.TodayWorkouts[1].Day)
}

func TestViewModel_AddCustomExercise(t *testing.T) {
	vm, _ := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	err := vm.AddCustomExerciseAndWorkout(ctx,
		entities.Exercise{Name: "Farmer Carry", Category: "Full Body", MuscleGroup: "Grip"},
		ParsedWorkout{Sets: 3, Reps: 1, Weight: 32, RestTimeSeconds: 120},
	)
	require.NoError(t, err)

	state := waitFor(t, vm, func(s UIState) bool {
		return len(s.AllExercises) == 49 && len(s.TodayWorkouts) == 1
	})
	assert.Equal(t, "Farmer Carry", state.TodayWorkouts[0].ExerciseName)
}

func TestViewModel_CompleteWorkoutUsesClock(t *testing.T) {
	vm, repo := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	_, err := vm.ApplySplit(ctx, "ppl")
	require.NoError(t, err)
	state := waitFor(t, vm, func(s UIState) bool { return len(s.TodayWorkouts) == 5 })

	entry, err := vm.CompleteWorkout(ctx, state.TodayWorkouts[0].ID)
	require.NoError(t, err)
	assert.True(t, entry.CompletedAt.Equal(monday))

	state = waitFor(t, vm, func(s UIState) bool { return s.TodayWorkouts[0].IsCompleted })
	logs, err := repo.GetWorkoutLogsForExercise(ctx, state.TodayWorkouts[0].ExerciseID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestViewModel_FollowsWeekAndRecentLogs(t *testing.T) {
	vm, _ := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	_, err := vm.ApplySplit(ctx, "ppl")
	require.NoError(t, err)
	state := waitFor(t, vm, func(s UIState) bool {
		return len(s.WeekSchedule) == 7 && len(s.TodayWorkouts) == 5
	})
	assert.Equal(t, "Monday", state.WeekSchedule[0].Day)
	assert.Equal(t, "Push", state.WeekSchedule[0].Plan)

	for _, w := range state.TodayWorkouts {
		_, err := vm.CompleteWorkout(ctx, w.ID)
		require.NoError(t, err)
	}
	_, err = vm.CompleteWorkout(ctx, state.TodayWorkouts[0].ID)
	require.NoError(t, err)

	// only the newest logs are kept
	waitFor(t, vm, func(s UIState) bool { return len(s.RecentLogs) == 6 })
	for i := 0; i < 2; i++ {
		for _, w := range state.TodayWorkouts {
			_, err := vm.CompleteWorkout(ctx, w.ID)
			require.NoError(t, err)
		}
	}
	state = waitFor(t, vm, func(s UIState) bool { return len(s.RecentLogs) == RecentLogsShown })
	assert.Equal(t, state.TodayWorkouts[4].ExerciseID, state.RecentLogs[0].ExerciseID)
}

func TestViewModel_IntentErrorsSurface(t *testing.T) {
	vm, _ := setupViewModel(t, nil)
	ctx := context.Background()
	waitFor(t, vm, loaded)

	err := vm.UpdateSchedule(ctx, "Funday", "Push")
	assert.ErrorIs(t, err, entities.ErrInvalidDay)
	assert.NotEmpty(t, vm.State().ErrorMessage)

	vm.ClearError()
	assert.Empty(t, vm.State().ErrorMessage)

	_, err = vm.CompleteWorkout(ctx, 999)
	assert.ErrorIs(t, err, gymclock.ErrWorkoutNotFound)
	assert.Equal(t, gymclock.ErrWorkoutNotFound.Error(), vm.State().ErrorMessage)
}

type failingSchedule struct {
	Repository
}

func (failingSchedule) ApplySplitToSchedule(context.Context, string) error {
	return errors.New("disk full")
}

func TestViewModel_ApplySplitStopsOnScheduleFailure(t *testing.T) {
	vm, repo := setupViewModel(t, func(r Repository) Repository { return failingSchedule{r} })
	ctx := context.Background()
	waitFor(t, vm, loaded)

	_, err := vm.ApplySplit(ctx, "ppl")
	require.Error(t, err)
	assert.Equal(t, "disk full", vm.State().ErrorMessage)

	workouts, err := repo.GetWorkoutsForDay(ctx, "Monday")
	require.NoError(t, err)
	assert.Empty(t, workouts)
}

func TestViewModel_Watch(t *testing.T) {
	vm, _ := setupViewModel(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	waitFor(t, vm, loaded)

	updates := vm.Watch(ctx)
	first := <-updates
	assert.False(t, first.IsLoading)

	vm.ShowError("boom")
	assert.Eventually(t, func() bool {
		select {
		case s := <-updates:
			return s.ErrorMessage == "boom"
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestViewModel_StartRestTimer(t *testing.T) {
	vm := New(nil, timer.New())

	fired := 0
	vm.StartRestTimer(0, func() { fired++ })

	assert.Equal(t, 1, fired)
	assert.True(t, vm.Timer().State().IsFinished)
}
