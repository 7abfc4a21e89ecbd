package gymclock

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_gymclock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db
}

func setupSeeded(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	repo, db := setupTestDB(t)
	seeded, err := repo.InitializeDefaultData(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)
	return repo, db
}

func countWorkouts(t *testing.T, db *database.Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(&entities.Workout{}).Count(&n).Error)
	return n
}

func mustExercise(t *testing.T, repo *Repository, name string) *entities.Exercise {
	t.Helper()
	exercise, err := repo.GetExerciseByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, exercise, name)
	return exercise
}
