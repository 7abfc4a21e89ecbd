// Package schedules provides database operations for the weekly plan.
//
// # Usage
//
//	repo := schedules.NewRepository(db.DB, db.Hub)
//	err := repo.Upsert(ctx, "Monday", "Push")
package schedules

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

var table = entities.Schedule{}.TableName()

// Repository handles all schedule database operations.
type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

// NewRepository creates a new schedules repository. hub may be nil.
func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

// WithTx returns a repository bound to tx that does not publish changes.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Get returns the plan for day, or nil when the day has no row.
func (r *Repository) Get(ctx context.Context, day string) (*entities.Schedule, error) {
	var schedules []entities.Schedule
	if err := r.db.WithContext(ctx).Where("day = ?", day).Limit(1).Find(&schedules).Error; err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, nil
	}
	return &schedules[0], nil
}

// List returns every stored day in Monday..Sunday order.
func (r *Repository) List(ctx context.Context) ([]entities.Schedule, error) {
	var schedules []entities.Schedule
	if err := r.db.WithContext(ctx).Find(&schedules).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]entities.Schedule, len(schedules))
	for _, s := range schedules {
		byDay[s.Day] = s
	}
	ordered := make([]entities.Schedule, 0, len(schedules))
	for _, day := range entities.Weekdays {
		if s, ok := byDay[day]; ok {
			ordered = append(ordered, s)
			delete(byDay, day)
		}
	}
	for _, s := range schedules {
		if _, ok := byDay[s.Day]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// Upsert sets the plan for day, replacing any previous plan.
func (r *Repository) Upsert(ctx context.Context, day, plan string) error {
	return r.UpsertAll(ctx, []entities.Schedule{{Day: day, Plan: plan}})
}

// UpsertAll writes several days in one statement.
func (r *Repository) UpsertAll(ctx context.Context, schedules []entities.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan"}),
	}).Create(&schedules).Error
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Schedule{}).Count(&n).Error
	return n, err
}

// Watch emits the plan for day now and after every schedule change.
func (r *Repository) Watch(ctx context.Context, day string) <-chan *entities.Schedule {
	return live.Watch(ctx, r.hub, func(ctx context.Context) (*entities.Schedule, error) {
		return r.Get(ctx, day)
	}, table)
}

// WatchAll emits the whole week now and after every schedule change.
func (r *Repository) WatchAll(ctx context.Context) <-chan []entities.Schedule {
	return live.Watch(ctx, r.hub, r.List, table)
}

func (r *Repository) publish() {
	if r.hub != nil {
		r.hub.Publish(table)
	}
}
