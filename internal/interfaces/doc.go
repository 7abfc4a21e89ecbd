// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - viewmodel.Repository: everything the view-model reads and writes
//     (internal/viewmodel/viewmodel.go), implemented by gymclock.Repository
//   - scheduler.WeekResetter: clears completion flags for the weekly
//     rollover (internal/scheduler/rollover.go)
//
// ## Front End Interfaces
//
//   - cli.Command: a subcommand with ParseFlags and Run (internal/cli/command.go)
//   - timer.Ticker: the tick source of the rest timer (internal/timer/timer.go)
//
// # Adding a New Record Kind
//
// To store a new kind of record (e.g., body weight measurements):
//
//  1. Add the gorm model to internal/entities/ and to database.Models
//
//  2. Create sub-package: internal/database/measurements/
//
//     type Repository struct {
//         db  *gorm.DB
//         hub *live.Hub
//     }
//
//     func NewRepository(db *gorm.DB, hub *live.Hub) *Repository
//
//  3. Publish the table after every write and offer a Watch method built on
//     live.Watch so the view-model can follow it
//
//  4. Expose the operations on gymclock.Repository
//
// # Adding a New Command
//
//  1. Create the command in internal/cli/ embedding base
//
//     type ExportCommand struct {
//         base
//         Output string
//     }
//
//     func (cmd *ExportCommand) ParseFlags(args []string) error
//     func (cmd *ExportCommand) Run() error
//
//  2. Dispatch it from main.go and list it in printUsage
//
//  3. Add a compile-time check:
//
//     var _ cli.Command = (*cli.ExportCommand)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
