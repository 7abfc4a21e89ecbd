// Package splits provides database operations for predefined training
// splits, their exercise templates and their week layouts.
//
// # Usage
//
//	repo := splits.NewRepository(db.DB, db.Hub)
//	templates, err := repo.Templates(ctx, "ppl")
//	layout, err := repo.Layout(ctx, "ppl")
package splits

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

// Tables lists every table a split write touches.
var Tables = []string{
	entities.PredefinedSplit{}.TableName(),
	entities.SplitTemplate{}.TableName(),
	entities.SplitDay{}.TableName(),
}

// Repository handles all split database operations.
type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

// NewRepository creates a new splits repository.
func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

// WithTx returns a repository bound to tx that does not publish changes.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns every split ordered by difficulty, then name.
func (r *Repository) List(ctx context.Context) ([]entities.PredefinedSplit, error) {
	var splits []entities.PredefinedSplit
	err := r.db.WithContext(ctx).Order("difficulty ASC, name ASC").Find(&splits).Error
	return splits, err
}

// Get returns the split, or nil when id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (*entities.PredefinedSplit, error) {
	var splits []entities.PredefinedSplit
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&splits).Error; err != nil {
		return nil, err
	}
	if len(splits) == 0 {
		return nil, nil
	}
	return &splits[0], nil
}

// Templates returns the split's exercises ordered by program day, then
// position within the day.
func (r *Repository) Templates(ctx context.Context, splitID string) ([]entities.SplitTemplate, error) {
	var templates []entities.SplitTemplate
	err := r.db.WithContext(ctx).
		Where("split_id = ?", splitID).
		Order("day ASC, order_in_day ASC, id ASC").
		Find(&templates).Error
	return templates, err
}

// Layout returns the split's weekday assignments, Monday first.
func (r *Repository) Layout(ctx context.Context, splitID string) ([]entities.SplitDay, error) {
	var days []entities.SplitDay
	if err := r.db.WithContext(ctx).Where("split_id = ?", splitID).Find(&days).Error; err != nil {
		return nil, err
	}
	rank := make(map[string]int, len(entities.Weekdays))
	for i, day := range entities.Weekdays {
		rank[day] = i
	}
	sort.Slice(days, func(i, j int) bool {
		return rank[days[i].Weekday] < rank[days[j].Weekday]
	})
	return days, nil
}

// Create stores a split with its templates and layout atomically. Template
// and layout split IDs are overwritten with split.ID.
func (r *Repository) Create(ctx context.Context, split *entities.PredefinedSplit, templates []entities.SplitTemplate, layout []entities.SplitDay) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(split).Error; err != nil {
			return err
		}
		for i := range templates {
			templates[i].SplitID = split.ID
		}
		if len(templates) > 0 {
			if err := tx.Create(&templates).Error; err != nil {
				return err
			}
		}
		for i := range layout {
			layout[i].SplitID = split.ID
		}
		if len(layout) > 0 {
			if err := tx.Create(&layout).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if r.hub != nil {
		r.hub.Publish(Tables...)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.PredefinedSplit{}).Count(&n).Error
	return n, err
}

func (r *Repository) Watch(ctx context.Context) <-chan []entities.PredefinedSplit {
	return live.Watch(ctx, r.hub, r.List, entities.PredefinedSplit{}.TableName())
}
