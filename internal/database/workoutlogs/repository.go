// Package workoutlogs provides database operations for the append-only
// workout history. Logs are never updated or deleted here; they go away only
// when their exercise is deleted.
package workoutlogs

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

// DefaultRecentLimit is the number of logs ListRecent returns for limit <= 0.
const DefaultRecentLimit = 50

var table = entities.WorkoutLog{}.TableName()

type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, log *entities.WorkoutLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return err
	}
	if r.hub != nil {
		r.hub.Publish(table)
	}
	return nil
}

// ListForExercise returns the exercise's logs, newest first.
func (r *Repository) ListForExercise(ctx context.Context, exerciseID uint) ([]entities.WorkoutLog, error) {
	var logs []entities.WorkoutLog
	err := r.db.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		Order("completed_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

// ListRecent returns the newest logs across all exercises.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]entities.WorkoutLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var logs []entities.WorkoutLog
	err := r.db.WithContext(ctx).
		Order("completed_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// MaxWeight returns the heaviest weight logged for the exercise; ok is false
// when the exercise has no logs yet.
func (r *Repository) MaxWeight(ctx context.Context, exerciseID uint) (weight float64, ok bool, err error) {
	var max sql.NullFloat64
	err = r.db.WithContext(ctx).
		Model(&entities.WorkoutLog{}).
		Where("exercise_id = ?", exerciseID).
		Select("MAX(weight)").
		Scan(&max).Error
	if err != nil {
		return 0, false, err
	}
	return max.Float64, max.Valid, nil
}

func (r *Repository) WatchRecent(ctx context.Context, limit int) <-chan []entities.WorkoutLog {
	return live.Watch(ctx, r.hub, func(ctx context.Context) ([]entities.WorkoutLog, error) {
		return r.ListRecent(ctx, limit)
	}, table)
}
