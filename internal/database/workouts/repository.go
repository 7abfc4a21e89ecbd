// Package workouts provides database operations for the weekly plan's
// exercise instances.
//
// # Usage
//
//	repo := workouts.NewRepository(db.DB, db.Hub)
//	monday, err := repo.ListForDay(ctx, "Monday")
//	for w := range repo.WatchForDay(ctx, "Monday") {
//		render(w)
//	}
package workouts

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

var table = entities.Workout{}.TableName()

// Tables lists the tables ListForDay reads.
var Tables = []string{table, entities.Exercise{}.TableName()}

// Repository handles all workout database operations.
type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

// NewRepository creates a new workouts repository.
func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

// WithTx returns a repository bound to tx that does not publish changes.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListForDay returns the day's workouts joined with their exercise,
// ordered by position and then by insertion.
func (r *Repository) ListForDay(ctx context.Context, day string) ([]entities.WorkoutWithExercise, error) {
	var rows []entities.WorkoutWithExercise
	err := r.db.WithContext(ctx).
		Table("workouts").
		Select("workouts.*, exercises.name AS exercise_name, exercises.category AS category, exercises.muscle_group AS muscle_group").
		Joins("JOIN exercises ON exercises.id = workouts.exercise_id").
		Where("workouts.day = ?", day).
		Order("workouts.order_in_workout ASC, workouts.id ASC").
		Scan(&rows).Error
	return rows, err
}

// Get returns database.ErrNotFound when id does not exist.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Workout, error) {
	var workout entities.Workout
	if err := r.db.WithContext(ctx).First(&workout, id).Error; err != nil {
		return nil, database.NotFound(err)
	}
	return &workout, nil
}

// Create inserts workout and sets its ID.
func (r *Repository) Create(ctx context.Context, workout *entities.Workout) error {
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return err
	}
	r.publish()
	return nil
}

// CreateBatch inserts all workouts in one statement and publishes once.
func (r *Repository) CreateBatch(ctx context.Context, workouts []entities.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&workouts).Error; err != nil {
		return err
	}
	r.publish()
	return nil
}

// Update overwrites every column of an existing workout.
func (r *Repository) Update(ctx context.Context, workout *entities.Workout) error {
	if workout.ID == 0 {
		return database.ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(workout).Select("*").Omit("Exercise").Updates(workout)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	r.publish()
	return nil
}

// MarkCompleted flags the workout as done at completedAt.
func (r *Repository) MarkCompleted(ctx context.Context, id uint, completedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Workout{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_completed": true, "completed_at": completedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	r.publish()
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Workout{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	r.publish()
	return nil
}

// DeleteForDay removes every planned workout of the given days and
// returns how many rows went away.
func (r *Repository) DeleteForDay(ctx context.Context, days ...string) (int64, error) {
	if len(days) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("day IN ?", days).Delete(&entities.Workout{})
	if result.Error != nil {
		return 0, result.Error
	}
	r.publish()
	return result.RowsAffected, nil
}

// ResetCompletion clears the completion flag of every workout and returns
// how many workouts were reset.
func (r *Repository) ResetCompletion(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Workout{}).
		Where("is_completed = ?", true).
		Updates(map[string]any{"is_completed": false, "completed_at": nil})
	if result.Error != nil {
		return 0, result.Error
	}
	r.publish()
	return result.RowsAffected, nil
}

// NextOrder is the position of a workout appended to day: the number of
// workouts already planned for it.
func (r *Repository) NextOrder(ctx context.Context, day string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Workout{}).Where("day = ?", day).Count(&n).Error
	return int(n), err
}

// WatchForDay emits the day's joined workouts now and after every change to
// workouts or exercises.
func (r *Repository) WatchForDay(ctx context.Context, day string) <-chan []entities.WorkoutWithExercise {
	return live.Watch(ctx, r.hub, func(ctx context.Context) ([]entities.WorkoutWithExercise, error) {
		return r.ListForDay(ctx, day)
	}, Tables...)
}

func (r *Repository) publish() {
	if r.hub != nil {
		r.hub.Publish(table)
	}
}
