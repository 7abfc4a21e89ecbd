// Package exercises provides database operations for the exercise catalog.
//
// # Usage
//
//	repo := exercises.NewRepository(db.DB, db.Hub)
//	bench, err := repo.GetByName(ctx, "Bench Press")
//	all, err := repo.List(ctx)
//
// Deleting an exercise cascades to its planned workouts and workout logs.
package exercises

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

var table = entities.Exercise{}.TableName()

// Tables lists every table a catalog change can touch.
var Tables = []string{
	table,
	entities.Workout{}.TableName(),
	entities.WorkoutLog{}.TableName(),
}

// Repository handles all exercise database operations.
type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

// NewRepository creates a new exercises repository.
func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

// WithTx returns a repository bound to tx that does not publish changes.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns the whole catalog ordered by name.
func (r *Repository) List(ctx context.Context) ([]entities.Exercise, error) {
	var exercises []entities.Exercise
	err := r.db.WithContext(ctx).Order("name ASC").Find(&exercises).Error
	return exercises, err
}

// ListByCategory returns the exercises of one category ordered by name.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]entities.Exercise, error) {
	var exercises []entities.Exercise
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&exercises).Error
	return exercises, err
}

// Search returns exercises whose name contains query, ignoring case.
func (r *Repository) Search(ctx context.Context, query string) ([]entities.Exercise, error) {
	var exercises []entities.Exercise
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&exercises).Error
	return exercises, err
}

// GetByID returns database.ErrNotFound when id does not exist.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Exercise, error) {
	var exercise entities.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		return nil, database.NotFound(err)
	}
	return &exercise, nil
}

// GetByName returns the first exercise named exactly name, or nil.
func (r *Repository) GetByName(ctx context.Context, name string) (*entities.Exercise, error) {
	var exercises []entities.Exercise
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		Limit(1).
		Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, nil
	}
	return &exercises[0], nil
}

// Create inserts exercise and sets its ID.
func (r *Repository) Create(ctx context.Context, exercise *entities.Exercise) error {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return err
	}
	r.publish(table)
	return nil
}

// CreateBatch inserts all exercises in one statement.
func (r *Repository) CreateBatch(ctx context.Context, exercises []entities.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&exercises).Error; err != nil {
		return err
	}
	r.publish(table)
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Exercise{}).Count(&n).Error
	return n, err
}

// Delete removes the exercise together with its workouts and logs.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Exercise{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	r.publish(Tables...)
	return nil
}

func (r *Repository) Watch(ctx context.Context) <-chan []entities.Exercise {
	return live.Watch(ctx, r.hub, r.List, table)
}

func (r *Repository) publish(tables ...string) {
	if r.hub != nil {
		r.hub.Publish(tables...)
	}
}
