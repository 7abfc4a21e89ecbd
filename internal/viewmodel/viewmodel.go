// Package viewmodel merges today's live data into a single UI snapshot and
// turns user intents into repository and timer calls.
package viewmodel

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/gymclock"
	"github.com/mrlokans/gymclock/internal/live"
	"github.com/mrlokans/gymclock/internal/timer"
)

const topic = "ui"

// RecentLogsShown is how many completed workouts the state keeps.
const RecentLogsShown = 10

// Repository is the part of the store the view-model needs.
type Repository interface {
	InitializeDefaultData(ctx context.Context) (bool, error)

	WatchSchedule(ctx context.Context, day string) (<-chan *entities.Schedule, error)
	WatchGoal(ctx context.Context, day string) (<-chan *entities.Goal, error)
	WatchWorkoutsForDay(ctx context.Context, day string) (<-chan []entities.WorkoutWithExercise, error)
	WatchExercises(ctx context.Context) <-chan []entities.Exercise
	WatchSplits(ctx context.Context) <-chan []entities.PredefinedSplit
	WatchWeekSchedule(ctx context.Context) <-chan []entities.Schedule
	WatchRecentWorkoutLogs(ctx context.Context, limit int) <-chan []entities.WorkoutLog

	UpsertSchedule(ctx context.Context, day, plan string) error
	UpsertGoal(ctx context.Context, day string, reps, weight int) error
	InsertWorkout(ctx context.Context, workout *entities.Workout) error
	AddCustomExerciseAndWorkout(ctx context.Context, exercise *entities.Exercise, workout *entities.Workout) error
	CompleteWorkout(ctx context.Context, workoutID uint, completedAt time.Time) (*entities.WorkoutLog, error)
	ApplySplitToSchedule(ctx context.Context, splitID string) error
	ApplySplit(ctx context.Context, splitID string) (gymclock.ApplyResult, error)
}

// UIState is everything the home screen shows.
type UIState struct {
	Today            string
	TodaySchedule    *entities.Schedule
	TodayGoal        *entities.Goal
	TodayWorkouts    []entities.WorkoutWithExercise
	AllExercises     []entities.Exercise
	PredefinedSplits []entities.PredefinedSplit
	WeekSchedule     []entities.Schedule
	RecentLogs       []entities.WorkoutLog
	// IsLoading stays true until every source has delivered once.
	IsLoading    bool
	ErrorMessage string
}

type Option func(*ViewModel)

// WithClock replaces time.Now; it decides which weekday is "today" and
// stamps completed workouts.
func WithClock(now func() time.Time) Option {
	return func(vm *ViewModel) {
		vm.now = now
	}
}

type ViewModel struct {
	repo  Repository
	timer *timer.Timer
	now   func() time.Time
	hub   *live.Hub

	mu    sync.Mutex
	state UIState
	done  chan struct{}
}

func New(repo Repository, t *timer.Timer, opts ...Option) *ViewModel {
	vm := &ViewModel{
		repo:  repo,
		timer: t,
		now:   time.Now,
		hub:   live.NewHub(),
		state: UIState{IsLoading: true},
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Start seeds the store on first run and keeps the state in sync with
// today's schedule, goal and workouts, the exercise catalog, the splits, the
// week plan and the latest completed workouts until ctx is done. It must be
// called once.
func (vm *ViewModel) Start(ctx context.Context) error {
	if _, err := vm.repo.InitializeDefaultData(ctx); err != nil {
		return err
	}

	today := entities.DayOf(vm.now())
	vm.update(func(s *UIState) { s.Today = today })

	schedule, err := vm.repo.WatchSchedule(ctx, today)
	if err != nil {
		return err
	}
	goal, err := vm.repo.WatchGoal(ctx, today)
	if err != nil {
		return err
	}
	workouts, err := vm.repo.WatchWorkoutsForDay(ctx, today)
	if err != nil {
		return err
	}
	exercises := vm.repo.WatchExercises(ctx)
	splits := vm.repo.WatchSplits(ctx)
	week := vm.repo.WatchWeekSchedule(ctx)
	logs := vm.repo.WatchRecentWorkoutLogs(ctx, RecentLogsShown)

	go vm.combine(ctx, sources{schedule, goal, workouts, exercises, splits, week, logs})
	return nil
}

type sources struct {
	schedule  <-chan *entities.Schedule
	goal      <-chan *entities.Goal
	workouts  <-chan []entities.WorkoutWithExercise
	exercises <-chan []entities.Exercise
	splits    <-chan []entities.PredefinedSplit
	week      <-chan []entities.Schedule
	logs      <-chan []entities.WorkoutLog
}

// Done is closed once the view-model stopped following the store.
func (vm *ViewModel) Done() <-chan struct{} {
	return vm.done
}

func (vm *ViewModel) combine(ctx context.Context, in sources) {
	defer close(vm.done)

	const count = 7
	seen := make(map[int]bool, count)
	mark := func(s *UIState, source int) {
		seen[source] = true
		if len(seen) == count {
			s.IsLoading = false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in.schedule:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.TodaySchedule = v; mark(s, 0) })
		case v, ok := <-in.goal:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.TodayGoal = v; mark(s, 1) })
		case v, ok := <-in.workouts:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.TodayWorkouts = v; mark(s, 2) })
		case v, ok := <-in.exercises:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.AllExercises = v; mark(s, 3) })
		case v, ok := <-in.splits:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.PredefinedSplits = v; mark(s, 4) })
		case v, ok := <-in.week:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.WeekSchedule = v; mark(s, 5) })
		case v, ok := <-in.logs:
			if !ok {
				return
			}
			vm.update(func(s *UIState) { s.RecentLogs = v; mark(s, 6) })
		}
	}
}

func (vm *ViewModel) State() UIState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Watch emits the current state and every later change until ctx is done.
func (vm *ViewModel) Watch(ctx context.Context) <-chan UIState {
	return live.Watch(ctx, vm.hub, func(context.Context) (UIState, error) {
		return vm.State(), nil
	}, topic)
}

func (vm *ViewModel) Timer() *timer.Timer {
	return vm.timer
}

func (vm *ViewModel) update(fn func(*UIState)) {
	vm.mu.Lock()
	fn(&vm.state)
	vm.mu.Unlock()
	vm.hub.Publish(topic)
}

// fail records err as the visible error message and returns it.
func (vm *ViewModel) fail(action string, err error) error {
	if err != nil {
		log.WithError(err).Errorf("%s failed", action)
		vm.ShowError(err.Error())
	}
	return err
}

func (vm *ViewModel) UpdateSchedule(ctx context.Context, day, plan string) error {
	return vm.fail("update schedule", vm.repo.UpsertSchedule(ctx, day, plan))
}

func (vm *ViewModel) UpdateGoal(ctx context.Context, day string, reps, weight int) error {
	return vm.fail("update goal", vm.repo.UpsertGoal(ctx, day, reps, weight))
}

// AddWorkout plans an exercise for today after the workouts already shown.
func (vm *ViewModel) AddWorkout(ctx context.Context, exerciseID uint, w ParsedWorkout) error {
	state := vm.State()
	workout := &entities.Workout{
		ExerciseID:      exerciseID,
		Day:             vm.day(state),
		Sets:            w.Sets,
		Reps:            w.Reps,
		Weight:          w.Weight,
		RestTimeSeconds: w.RestTimeSeconds,
		OrderInWorkout:  len(state.TodayWorkouts),
	}
	return vm.fail("add workout", vm.repo.InsertWorkout(ctx, workout))
}

// AddCustomExerciseAndWorkout creates a catalog entry and plans it for today.
func (vm *ViewModel) AddCustomExerciseAndWorkout(ctx context.Context, exercise entities.Exercise, w ParsedWorkout) error {
	state := vm.State()
	workout := &entities.Workout{
		Day:             vm.day(state),
		Sets:            w.Sets,
		Reps:            w.Reps,
		Weight:          w.Weight,
		RestTimeSeconds: w.RestTimeSeconds,
		OrderInWorkout:  len(state.TodayWorkouts),
	}
	return vm.fail("add custom exercise", vm.repo.AddCustomExerciseAndWorkout(ctx, &exercise, workout))
}

func (vm *ViewModel) CompleteWorkout(ctx context.Context, workoutID uint) (*entities.WorkoutLog, error) {
	entry, err := vm.repo.CompleteWorkout(ctx, workoutID, vm.now())
	return entry, vm.fail("complete workout", err)
}

// ApplySplit lays the split out over the week's schedule and replaces the
// week's planned workouts with its templates.
func (vm *ViewModel) ApplySplit(ctx context.Context, splitID string) (gymclock.ApplyResult, error) {
	if err := vm.repo.ApplySplitToSchedule(ctx, splitID); err != nil {
		return gymclock.ApplyResult{}, vm.fail("apply split", err)
	}
	result, err := vm.repo.ApplySplit(ctx, splitID)
	return result, vm.fail("apply split", err)
}

func (vm *ViewModel) StartRestTimer(seconds int, onFinished func()) {
	vm.timer.Start(seconds, onFinished)
}

func (vm *ViewModel) ShowError(message string) {
	vm.update(func(s *UIState) { s.ErrorMessage = message })
}

func (vm *ViewModel) ClearError() {
	vm.update(func(s *UIState) { s.ErrorMessage = "" })
}

func (vm *ViewModel) day(state UIState) string {
	if state.Today != "" {
		return state.Today
	}
	return entities.DayOf(vm.now())
}
