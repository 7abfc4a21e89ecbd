package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/gymclock/internal/cli"
	"github.com/mrlokans/gymclock/internal/gymclock"
	"github.com/mrlokans/gymclock/internal/scheduler"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Repository implementations
var _ viewmodel.Repository = (*gymclock.Repository)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

// WeekResetter implementations
var _ scheduler.WeekResetter = (*gymclock.Repository)(nil)

// =============================================================================
// Terminal Front End
// =============================================================================

// Command implementations
var _ cli.Command = (*cli.TodayCommand)(nil)
var _ cli.Command = (*cli.WeekCommand)(nil)
var _ cli.Command = (*cli.ScheduleCommand)(nil)
var _ cli.Command = (*cli.GoalCommand)(nil)
var _ cli.Command = (*cli.ExercisesCommand)(nil)
var _ cli.Command = (*cli.PlanCommand)(nil)
var _ cli.Command = (*cli.CompleteCommand)(nil)
var _ cli.Command = (*cli.SplitsCommand)(nil)
var _ cli.Command = (*cli.ApplySplitCommand)(nil)
var _ cli.Command = (*cli.HistoryCommand)(nil)
var _ cli.Command = (*cli.TimerCommand)(nil)
