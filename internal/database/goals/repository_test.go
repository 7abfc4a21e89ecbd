package goals

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/gymclock/internal/database"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_goals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB, db.Hub)
}

func TestRepository_UpsertReplacesGoal(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Tuesday", 10, 60))
	require.NoError(t, repo.Upsert(ctx, "Tuesday", 8, 80))

	goal, err := repo.Get(ctx, "Tuesday")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, 8, goal.Reps)
	assert.Equal(t, 80, goal.Weight)

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestRepository_GetMissingGoal(t *testing.T) {
	repo := setupTestDB(t)

	goal, err := repo.Get(context.Background(), "Sunday")

	require.NoError(t, err)
	assert.Nil(t, goal)
}

func TestRepository_ListInWeekOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Saturday", 5, 100))
	require.NoError(t, repo.Upsert(ctx, "Monday", 10, 50))

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Monday", goals[0].Day)
	assert.Equal(t, "Saturday", goals[1].Day)
}
