package gymclock

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/database/exercises"
	"github.com/mrlokans/gymclock/internal/entities"
)

// CompleteWorkout marks the workout done and appends a log entry with its
// sets, reps and weight. The log is a personal record when its weight beats
// every earlier log of the exercise; bodyweight exercises never set records.
func (r *Repository) CompleteWorkout(ctx context.Context, workoutID uint, completedAt time.Time) (*entities.WorkoutLog, error) {
	var entry *entities.WorkoutLog

	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		workoutRepo := r.workouts.WithTx(tx)
		workout, err := workoutRepo.Get(ctx, workoutID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrWorkoutNotFound
			}
			return err
		}

		exercise, err := r.exercises.WithTx(tx).GetByID(ctx, workout.ExerciseID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrExerciseNotFound
			}
			return err
		}

		logRepo := r.workoutLogs.WithTx(tx)
		best, hasHistory, err := logRepo.MaxWeight(ctx, workout.ExerciseID)
		if err != nil {
			return err
		}

		if err := workoutRepo.MarkCompleted(ctx, workout.ID, completedAt); err != nil {
			return err
		}

		entry = &entities.WorkoutLog{
			ExerciseID:       workout.ExerciseID,
			Sets:             workout.Sets,
			Reps:             workout.Reps,
			Weight:           workout.Weight,
			CompletedAt:      completedAt,
			Notes:            workout.Notes,
			IsPersonalRecord: !exercise.IsBodyweight && (!hasHistory || workout.Weight > best),
		}
		return logRepo.Create(ctx, entry)
	}, entities.Workout{}.TableName(), entities.WorkoutLog{}.TableName())
	if err != nil {
		return nil, err
	}

	if entry.IsPersonalRecord {
		log.WithFields(log.Fields{
			"exercise_id": entry.ExerciseID,
			"weight":      entry.Weight,
		}).Info("new personal record")
	}
	return entry, nil
}

// AddCustomExerciseAndWorkout adds a new exercise to the catalog and plans
// it in one step; workout.ExerciseID is set to the new exercise.
func (r *Repository) AddCustomExerciseAndWorkout(ctx context.Context, exercise *entities.Exercise, workout *entities.Workout) error {
	exercise.Name = strings.TrimSpace(exercise.Name)
	if exercise.Name == "" {
		return ErrEmptyName
	}
	if err := normalizeWorkout(workout); err != nil {
		return err
	}

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.exercises.WithTx(tx).Create(ctx, exercise); err != nil {
			return err
		}
		workout.ExerciseID = exercise.ID
		return r.workouts.WithTx(tx).Create(ctx, workout)
	}, exercises.Tables...)
}

// ResetWeek clears the completion flag of every planned workout and
// returns how many were reset. History is kept.
func (r *Repository) ResetWeek(ctx context.Context) (int64, error) {
	n, err := r.workouts.ResetCompletion(ctx)
	if err != nil {
		return 0, err
	}
	log.WithField("workouts", n).Info("weekly plan reset")
	return n, nil
}
