package cli

import (
	"context"
	"fmt"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/entities"
)

// ScheduleCommand assigns a plan label to a weekday.
type ScheduleCommand struct {
	base
	Day  string
	Plan string
}

func NewScheduleCommand(cfg *config.Config) *ScheduleCommand {
	return &ScheduleCommand{base: newBase(cfg)}
}

func (cmd *ScheduleCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("schedule", "schedule -day <day> -plan <plan> [options]")
	fs.StringVar(&cmd.Day, "day", "", "Day to plan (default: today)")
	fs.StringVar(&cmd.Plan, "plan", entities.PlanRest, "Plan label, e.g. Push, Legs or Rest")

	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := cmd.day(cmd.Day)
	if err != nil {
		return err
	}
	cmd.Day = day
	return nil
}

func (cmd *ScheduleCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.UpsertSchedule(ctx, cmd.Day, cmd.Plan); err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	schedule, err := repo.GetSchedule(ctx, cmd.Day)
	if err != nil {
		return err
	}
	cmd.printf("%s is now %s\n", schedule.Day, schedule.Plan)
	return nil
}

// GoalCommand sets the rep and weight target of a weekday.
type GoalCommand struct {
	base
	Day    string
	Reps   int
	Weight int
}

func NewGoalCommand(cfg *config.Config) *GoalCommand {
	return &GoalCommand{base: newBase(cfg)}
}

func (cmd *GoalCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("goal", "goal -day <day> -reps <n> -weight <kg> [options]")
	fs.StringVar(&cmd.Day, "day", "", "Day of the goal (default: today)")
	fs.IntVar(&cmd.Reps, "reps", 0, "Target reps (required, positive)")
	fs.IntVar(&cmd.Weight, "weight", 0, "Target weight in kg")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Reps <= 0 {
		return fmt.Errorf("required flag -reps must be positive")
	}

	day, err := cmd.day(cmd.Day)
	if err != nil {
		return err
	}
	cmd.Day = day
	return nil
}

func (cmd *GoalCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.UpsertGoal(ctx, cmd.Day, cmd.Reps, cmd.Weight); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	cmd.printf("Goal for %s: %d reps @ %d kg\n", cmd.Day, cmd.Reps, cmd.Weight)
	return nil
}
