package gymclock

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/database/exercises"
	"github.com/mrlokans/gymclock/internal/database/splits"
	"github.com/mrlokans/gymclock/internal/seed"
)

// InitializeDefaultData writes the built-in exercise catalog and splits when
// the catalog is empty. It reports whether anything was written; a store
// that already has exercises is left alone.
func (r *Repository) InitializeDefaultData(ctx context.Context) (bool, error) {
	catalog, err := seed.Default()
	if err != nil {
		return false, err
	}
	return r.initialize(ctx, catalog)
}

func (r *Repository) initialize(ctx context.Context, catalog *seed.Catalog) (bool, error) {
	seeded := false
	tables := append(append([]string{}, exercises.Tables...), splits.Tables...)

	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		exerciseRepo := r.exercises.WithTx(tx)
		n, err := exerciseRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		if err := exerciseRepo.CreateBatch(ctx, catalog.Exercises); err != nil {
			return fmt.Errorf("failed to seed exercises: %w", err)
		}
		splitRepo := r.splits.WithTx(tx)
		for i := range catalog.Splits {
			split := &catalog.Splits[i]
			if err := splitRepo.Create(ctx, &split.PredefinedSplit, split.Templates, split.Days()); err != nil {
				return fmt.Errorf("failed to seed split %s: %w", split.ID, err)
			}
		}
		seeded = true
		return nil
	}, tables...)
	if err != nil {
		return false, err
	}

	if seeded {
		log.WithFields(log.Fields{
			"exercises": len(catalog.Exercises),
			"splits":    len(catalog.Splits),
		}).Info("seeded default data")
	}
	return seeded, nil
}
