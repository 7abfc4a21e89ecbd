package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/database/workoutlogs"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/gymclock"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

// HistoryCommand prints completed workouts, newest first.
type HistoryCommand struct {
	base
	Exercise string
	Limit    int
}

func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{base: newBase(cfg)}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("history", "history [-exercise <name>] [-limit n] [options]")
	fs.StringVar(&cmd.Exercise, "exercise", "", "Only show this exercise")
	fs.IntVar(&cmd.Limit, "limit", workoutlogs.DefaultRecentLimit, "Maximum number of entries")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Limit <= 0 {
		return fmt.Errorf("-limit must be positive")
	}
	return nil
}

func (cmd *HistoryCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	var logs []entities.WorkoutLog
	if cmd.Exercise != "" {
		exercise, err := repo.GetExerciseByName(ctx, cmd.Exercise)
		if err != nil {
			return err
		}
		if exercise == nil {
			return fmt.Errorf("%w: %q", gymclock.ErrExerciseNotFound, cmd.Exercise)
		}
		logs, err = repo.GetWorkoutLogsForExercise(ctx, exercise.ID)
		if err != nil {
			return err
		}
		if len(logs) > cmd.Limit {
			logs = logs[:cmd.Limit]
		}
	} else {
		logs, err = repo.GetRecentWorkoutLogs(ctx, cmd.Limit)
		if err != nil {
			return err
		}
	}

	if len(logs) == 0 {
		cmd.println("No completed workouts yet")
		return nil
	}

	exercises, err := repo.ListExercises(ctx)
	if err != nil {
		return err
	}
	names := make(map[uint]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}

	tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tEXERCISE\tSETS x REPS\tWEIGHT\tPR")
	for _, l := range logs {
		pr := ""
		if l.IsPersonalRecord {
			pr = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d x %d\t%s\t%s\n",
			l.CompletedAt.Local().Format("2006-01-02 15:04"), names[l.ExerciseID],
			l.Sets, l.Reps, viewmodel.FormatWeight(l.Weight), pr)
	}
	return tw.Flush()
}
