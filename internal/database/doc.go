// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, transactions
//	├── schedules/       # Weekday plan labels (upsert by day)
//	├── goals/           # Daily rep/weight goals (upsert by day)
//	├── exercises/       # Exercise catalog
//	├── workouts/        # Planned workouts per weekday
//	├── workoutlogs/     # Append-only completion history
//	└── splits/          # Predefined splits, templates and week layouts
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./gymclock.db")
//
//	// Create domain-specific repositories
//	workoutsRepo := workouts.NewRepository(db.DB, db.Hub)
//	splitsRepo := splits.NewRepository(db.DB, db.Hub)
//
//	// Use repositories
//	monday, err := workoutsRepo.ListForDay(ctx, "Monday")
//
// # Live Queries
//
// Every write made through a Repository publishes the table it touched on
// the Hub after it succeeds, which re-runs the matching live.Watch queries.
// Writes made with WithTx publish nothing; use Database.Transaction, which
// publishes once the transaction commits.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/measurements/
//  2. Define a Repository struct with *gorm.DB and *live.Hub fields
//  3. Add NewRepository(db *gorm.DB, hub *live.Hub) constructor and WithTx
//  4. Add the entity to Models in database.go
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
