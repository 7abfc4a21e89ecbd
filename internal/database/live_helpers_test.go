package database

import (
	"context"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

func watchCount(ctx context.Context, db *Database, query live.Query[int64]) <-chan int64 {
	return live.Watch(ctx, db.Hub, query, entities.Schedule{}.TableName())
}
