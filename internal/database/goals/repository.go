// Package goals provides database operations for per-day rep and weight goals.
package goals

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

var table = entities.Goal{}.TableName()

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

// Get returns the goal for day, or nil when none is set.
func (r *Repository) Get(ctx context.Context, day string) (*entities.Goal, error) {
	var goals []entities.Goal
	if err := r.db.WithContext(ctx).Where("day = ?", day).Limit(1).Find(&goals).Error; err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, nil
	}
	return &goals[0], nil
}

// List returns all goals in Monday..Sunday order.
func (r *Repository) List(ctx context.Context) ([]entities.Goal, error) {
	var goals []entities.Goal
	if err := r.db.WithContext(ctx).Find(&goals).Error; err != nil {
		return nil, err
	}
	rank := make(map[string]int, len(entities.Weekdays))
	for i, day := range entities.Weekdays {
		rank[day] = i
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return rank[goals[i].Day] < rank[goals[j].Day]
	})
	return goals, nil
}

// Upsert sets the goal for day, replacing any previous goal.
func (r *Repository) Upsert(ctx context.Context, day string, reps, weight int) error {
	goal := entities.Goal{Day: day, Reps: reps, Weight: weight}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"reps", "weight"}),
	}).Create(&goal).Error
	if err != nil {
		return err
	}
	if r.hub != nil {
		r.hub.Publish(table)
	}
	return nil
}

func (r *Repository) Watch(ctx context.Context, day string) <-chan *entities.Goal {
	return live.Watch(ctx, r.hub, func(ctx context.Context) (*entities.Goal, error) {
		return r.Get(ctx, day)
	}, table)
}
