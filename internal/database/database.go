package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/live"
)

// ErrNotFound is returned by repositories when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// Models lists every table of the store, in migration order.
var Models = []any{
	&entities.Schedule{},
	&entities.Goal{},
	&entities.Exercise{},
	&entities.Workout{},
	&entities.WorkoutLog{},
	&entities.PredefinedSplit{},
	&entities.SplitTemplate{},
	&entities.SplitDay{},
}

// Database owns the SQLite handle and the change hub of the store.
// It is created once at startup and closed on shutdown.
type Database struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewDatabase(dbPath string) (*Database, error) {
	logLevel := logger.Silent
	if log.IsLevelEnabled(log.DebugLevel) {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debugf("database initialized at %s", dbPath)

	return &Database{
		DB:  db,
		Hub: live.NewHub(),
	}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn in a transaction and, once it has committed,
// notifies watchers of tables.
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error, tables ...string) error {
	if err := d.DB.WithContext(ctx).Transaction(fn); err != nil {
		return err
	}
	d.Hub.Publish(tables...)
	return nil
}

// dsn enables foreign keys (cascading deletes rely on them), WAL and a busy
// timeout so live queries can read while a write is in progress.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on&_journal=WAL&_busy_timeout=5000"
}

// NotFound converts gorm's not-found error into ErrNotFound.
func NotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
