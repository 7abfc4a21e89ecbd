// Package gymclock is the application's single entry point to stored data:
// schedule, goals, exercise catalog, planned workouts, workout history and
// predefined splits, together with the operations that span several of them
// (first-run seeding, split application, workout completion).
package gymclock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/database/exercises"
	"github.com/mrlokans/gymclock/internal/database/goals"
	"github.com/mrlokans/gymclock/internal/database/schedules"
	"github.com/mrlokans/gymclock/internal/database/splits"
	"github.com/mrlokans/gymclock/internal/database/workoutlogs"
	"github.com/mrlokans/gymclock/internal/database/workouts"
	"github.com/mrlokans/gymclock/internal/entities"
)

type Repository struct {
	db          *database.Database
	schedules   *schedules.Repository
	goals       *goals.Repository
	exercises   *exercises.Repository
	workouts    *workouts.Repository
	workoutLogs *workoutlogs.Repository
	splits      *splits.Repository
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{
		db:          db,
		schedules:   schedules.NewRepository(db.DB, db.Hub),
		goals:       goals.NewRepository(db.DB, db.Hub),
		exercises:   exercises.NewRepository(db.DB, db.Hub),
		workouts:    workouts.NewRepository(db.DB, db.Hub),
		workoutLogs: workoutlogs.NewRepository(db.DB, db.Hub),
		splits:      splits.NewRepository(db.DB, db.Hub),
	}
}

// Schedule

func (r *Repository) GetSchedule(ctx context.Context, day string) (*entities.Schedule, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return nil, err
	}
	return r.schedules.Get(ctx, day)
}

func (r *Repository) ListSchedule(ctx context.Context) ([]entities.Schedule, error) {
	return r.schedules.List(ctx)
}

// UpsertSchedule sets day's plan. A blank plan is stored as a rest day.
func (r *Repository) UpsertSchedule(ctx context.Context, day, plan string) error {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return err
	}
	plan = strings.TrimSpace(plan)
	if plan == "" {
		plan = entities.PlanRest
	}
	return r.schedules.Upsert(ctx, day, plan)
}

func (r *Repository) WatchSchedule(ctx context.Context, day string) (<-chan *entities.Schedule, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return nil, err
	}
	return r.schedules.Watch(ctx, day), nil
}

// WatchWeekSchedule emits every stored day plan now and after each change.
func (r *Repository) WatchWeekSchedule(ctx context.Context) <-chan []entities.Schedule {
	return r.schedules.WatchAll(ctx)
}

// Goals

func (r *Repository) GetGoal(ctx context.Context, day string) (*entities.Goal, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return nil, err
	}
	return r.goals.Get(ctx, day)
}

func (r *Repository) ListGoals(ctx context.Context) ([]entities.Goal, error) {
	return r.goals.List(ctx)
}

func (r *Repository) UpsertGoal(ctx context.Context, day string, reps, weight int) error {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return err
	}
	if reps <= 0 || weight < 0 {
		return ErrInvalidGoal
	}
	return r.goals.Upsert(ctx, day, reps, weight)
}

func (r *Repository) WatchGoal(ctx context.Context, day string) (<-chan *entities.Goal, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return nil, err
	}
	return r.goals.Watch(ctx, day), nil
}

// Exercises

func (r *Repository) ListExercises(ctx context.Context) ([]entities.Exercise, error) {
	return r.exercises.List(ctx)
}

func (r *Repository) ListExercisesByCategory(ctx context.Context, category string) ([]entities.Exercise, error) {
	return r.exercises.ListByCategory(ctx, category)
}

func (r *Repository) SearchExercises(ctx context.Context, query string) ([]entities.Exercise, error) {
	return r.exercises.Search(ctx, query)
}

func (r *Repository) WatchExercises(ctx context.Context) <-chan []entities.Exercise {
	return r.exercises.Watch(ctx)
}

// GetExerciseByName returns the exercise with exactly this name, or nil.
func (r *Repository) GetExerciseByName(ctx context.Context, name string) (*entities.Exercise, error) {
	return r.exercises.GetByName(ctx, name)
}

func (r *Repository) InsertExercise(ctx context.Context, exercise *entities.Exercise) error {
	exercise.Name = strings.TrimSpace(exercise.Name)
	if exercise.Name == "" {
		return ErrEmptyName
	}
	return r.exercises.Create(ctx, exercise)
}

// DeleteExercise removes the exercise along with its workouts and history.
func (r *Repository) DeleteExercise(ctx context.Context, id uint) error {
	if err := r.exercises.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

// Workouts

func (r *Repository) GetWorkoutsForDay(ctx context.Context, day string) ([]entities.WorkoutWithExercise, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return nil, err
	}
	return r.workouts.ListForDay(ctx, day)
}

func (r *Repository) WatchWorkoutsForDay(ctx context.Context, day string) (<-chan []entities.WorkoutWithExercise, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return nil, err
	}
	return r.workouts.WatchForDay(ctx, day), nil
}

func (r *Repository) GetWorkout(ctx context.Context, id uint) (*entities.Workout, error) {
	workout, err := r.workouts.Get(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrWorkoutNotFound
	}
	return workout, err
}

// NextWorkoutOrder is the position of a workout appended to day.
func (r *Repository) NextWorkoutOrder(ctx context.Context, day string) (int, error) {
	day, err := entities.NormalizeDay(day)
	if err != nil {
		return 0, err
	}
	return r.workouts.NextOrder(ctx, day)
}

func (r *Repository) InsertWorkout(ctx context.Context, workout *entities.Workout) error {
	if err := r.checkWorkout(ctx, workout); err != nil {
		return err
	}
	return r.workouts.Create(ctx, workout)
}

func (r *Repository) UpdateWorkout(ctx context.Context, workout *entities.Workout) error {
	if err := r.checkWorkout(ctx, workout); err != nil {
		return err
	}
	if err := r.workouts.Update(ctx, workout); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func (r *Repository) DeleteWorkout(ctx context.Context, id uint) error {
	if err := r.workouts.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// checkWorkout normalizes the day and makes sure the exercise exists.
func (r *Repository) checkWorkout(ctx context.Context, workout *entities.Workout) error {
	if err := normalizeWorkout(workout); err != nil {
		return err
	}
	if _, err := r.exercises.GetByID(ctx, workout.ExerciseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("exercise %d: %w", workout.ExerciseID, ErrExerciseNotFound)
		}
		return err
	}
	return nil
}

// Workout logs

func (r *Repository) GetWorkoutLogsForExercise(ctx context.Context, exerciseID uint) ([]entities.WorkoutLog, error) {
	return r.workoutLogs.ListForExercise(ctx, exerciseID)
}

// GetRecentWorkoutLogs returns the newest logs; limit <= 0 means the default.
func (r *Repository) GetRecentWorkoutLogs(ctx context.Context, limit int) ([]entities.WorkoutLog, error) {
	return r.workoutLogs.ListRecent(ctx, limit)
}

func (r *Repository) WatchRecentWorkoutLogs(ctx context.Context, limit int) <-chan []entities.WorkoutLog {
	return r.workoutLogs.WatchRecent(ctx, limit)
}

func (r *Repository) InsertWorkoutLog(ctx context.Context, log *entities.WorkoutLog) error {
	return r.workoutLogs.Create(ctx, log)
}

// Splits

func (r *Repository) ListSplits(ctx context.Context) ([]entities.PredefinedSplit, error) {
	return r.splits.List(ctx)
}

func (r *Repository) WatchSplits(ctx context.Context) <-chan []entities.PredefinedSplit {
	return r.splits.Watch(ctx)
}

func (r *Repository) GetSplit(ctx context.Context, id string) (*entities.PredefinedSplit, error) {
	return r.splits.Get(ctx, id)
}

func (r *Repository) GetSplitTemplates(ctx context.Context, splitID string) ([]entities.SplitTemplate, error) {
	return r.splits.Templates(ctx, splitID)
}

func (r *Repository) GetSplitLayout(ctx context.Context, splitID string) ([]entities.SplitDay, error) {
	return r.splits.Layout(ctx, splitID)
}

func normalizeWorkout(workout *entities.Workout) error {
	day, err := entities.NormalizeDay(workout.Day)
	if err != nil {
		return err
	}
	workout.Day = day
	if workout.Sets <= 0 || workout.Reps <= 0 || workout.Weight < 0 || workout.RestTimeSeconds < 0 {
		return ErrInvalidWorkout
	}
	return nil
}
