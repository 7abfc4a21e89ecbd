package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/timer"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

// TodayCommand prints the plan, goal and workouts of one day.
type TodayCommand struct {
	base
	Day string
}

func NewTodayCommand(cfg *config.Config) *TodayCommand {
	return &TodayCommand{base: newBase(cfg)}
}

func (cmd *TodayCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("today", "today [-day <day>] [options]")
	fs.StringVar(&cmd.Day, "day", "", "Day to show (default: today)")

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

func (cmd *TodayCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	schedule, err := repo.GetSchedule(ctx, cmd.Day)
	if err != nil {
		return err
	}
	goal, err := repo.GetGoal(ctx, cmd.Day)
	if err != nil {
		return err
	}
	workouts, err := repo.GetWorkoutsForDay(ctx, cmd.Day)
	if err != nil {
		return err
	}

	plan := "not planned"
	if schedule != nil {
		plan = schedule.Plan
	}
	cmd.printf("%s: %s\n", cmd.Day, plan)
	if goal != nil {
		cmd.printf("Goal: %d reps @ %d kg\n", goal.Reps, goal.Weight)
	}

	if len(workouts) == 0 {
		cmd.println("No workouts planned")
		return nil
	}

	completed := 0
	for _, w := range workouts {
		if w.IsCompleted {
			completed++
		}
	}
	cmd.printf("\nWorkouts (%d/%d done):\n", completed, len(workouts))
	tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	for _, w := range workouts {
		fmt.Fprintf(tw, "  %s\t#%d\t%s\t%d x %d\t%s\trest %s\n",
			checkbox(w.IsCompleted), w.ID, w.ExerciseName,
			w.Sets, w.Reps, viewmodel.FormatWeight(w.Weight), timer.FormatTime(w.RestTimeSeconds))
	}
	return tw.Flush()
}

// WeekCommand prints the schedule and goals of all seven days.
type WeekCommand struct {
	base
}

func NewWeekCommand(cfg *config.Config) *WeekCommand {
	return &WeekCommand{base: newBase(cfg)}
}

func (cmd *WeekCommand) ParseFlags(args []string) error {
	return cmd.flagSet("week", "week [options]").Parse(args)
}

func (cmd *WeekCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	schedules, err := repo.ListSchedule(ctx)
	if err != nil {
		return err
	}
	goals, err := repo.ListGoals(ctx)
	if err != nil {
		return err
	}

	plans := make(map[string]string, len(schedules))
	for _, s := range schedules {
		plans[s.Day] = s.Plan
	}
	targets := make(map[string]entities.Goal, len(goals))
	for _, g := range goals {
		targets[g.Day] = g
	}

	today := entities.DayOf(cmd.now())
	tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tDAY\tPLAN\tWORKOUTS\tGOAL")
	for _, day := range entities.Weekdays {
		workouts, err := repo.GetWorkoutsForDay(ctx, day)
		if err != nil {
			return err
		}
		done := 0
		for _, w := range workouts {
			if w.IsCompleted {
				done++
			}
		}

		plan, ok := plans[day]
		if !ok {
			plan = "-"
		}
		goal := "-"
		if g, ok := targets[day]; ok {
			goal = fmt.Sprintf("%d reps @ %d kg", g.Reps, g.Weight)
		}
		marker := ""
		if day == today {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n", marker, day, plan, done, len(workouts), goal)
	}
	return tw.Flush()
}
