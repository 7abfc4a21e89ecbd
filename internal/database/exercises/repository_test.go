package exercises

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_exercises.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB, db.Hub), db
}

func fakeExercise(category string) entities.Exercise {
	return entities.Exercise{
		Name:        gofakeit.Noun() + " " + gofakeit.UUID(),
		Category:    category,
		MuscleGroup: gofakeit.RandomString([]string{"Chest", "Back", "Quadriceps"}),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	exercise := fakeExercise("Push")
	require.NoError(t, repo.Create(ctx, &exercise))
	assert.NotZero(t, exercise.ID)

	byID, err := repo.GetByID(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, exercise.Name, byID.Name)

	byName, err := repo.GetByName(ctx, exercise.Name)
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, exercise.ID, byName.ID)
}

func TestRepository_GetMissing(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, database.ErrNotFound)

	exercise, err := repo.GetByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, exercise)
}

func TestRepository_ListOrderedByName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []entities.Exercise{
		{Name: "Squats", Category: "Legs"},
		{Name: "Bench Press", Category: "Push"},
		{Name: "Deadlift", Category: "Pull"},
	}))

	exercises, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 3)
	assert.Equal(t, "Bench Press", exercises[0].Name)
	assert.Equal(t, "Deadlift", exercises[1].Name)
	assert.Equal(t, "Squats", exercises[2].Name)
}

func TestRepository_ListByCategoryAndSearch(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []entities.Exercise{
		{Name: "Barbell Curls", Category: "Pull"},
		{Name: "Hammer Curls", Category: "Pull"},
		{Name: "Bench Press", Category: "Push"},
	}))

	pull, err := repo.ListByCategory(ctx, "Pull")
	require.NoError(t, err)
	assert.Len(t, pull, 2)

	found, err := repo.Search(ctx, "CURL")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Barbell Curls", found[0].Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepository_DeleteCascades(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	exercise := fakeExercise("Legs")
	require.NoError(t, repo.Create(ctx, &exercise))
	require.NoError(t, db.DB.Create(&entities.Workout{ExerciseID: exercise.ID, Day: "Wednesday", Sets: 3, Reps: 8}).Error)
	require.NoError(t, db.DB.Create(&entities.WorkoutLog{ExerciseID: exercise.ID, Sets: 3, Reps: 8, Weight: 100}).Error)

	require.NoError(t, repo.Delete(ctx, exercise.ID))

	var workouts, logs int64
	require.NoError(t, db.DB.Model(&entities.Workout{}).Count(&workouts).Error)
	require.NoError(t, db.DB.Model(&entities.WorkoutLog{}).Count(&logs).Error)
	assert.Zero(t, workouts)
	assert.Zero(t, logs)

	assert.ErrorIs(t, repo.Delete(ctx, exercise.ID), database.ErrNotFound)
}

func TestRepository_WatchReflectsCreate(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := repo.Watch(ctx)
	assert.Empty(t, <-updates)

	exercise := fakeExercise("Core")
	require.NoError(t, repo.Create(ctx, &exercise))

	assert.Eventually(t, func() bool {
		select {
		case exercises := <-updates:
			return len(exercises) == 1
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
