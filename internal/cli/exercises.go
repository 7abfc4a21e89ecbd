package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/entities"
)

// ExercisesCommand lists the exercise catalog.
type ExercisesCommand struct {
	base
	Query    string
	Category string
}

func NewExercisesCommand(cfg *config.Config) *ExercisesCommand {
	return &ExercisesCommand{base: newBase(cfg)}
}

func (cmd *ExercisesCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("exercises", "exercises [-q <text>] [-category <category>] [options]")
	fs.StringVar(&cmd.Query, "q", "", "Only exercises whose name contains this text")
	fs.StringVar(&cmd.Category, "category", "", "Only exercises of this category, e.g. Push")
	return fs.Parse(args)
}

func (cmd *ExercisesCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	var exercises []entities.Exercise
	switch {
	case cmd.Query != "":
		exercises, err = repo.SearchExercises(ctx, cmd.Query)
		if err == nil && cmd.Category != "" {
			exercises = filterCategory(exercises, cmd.Category)
		}
	case cmd.Category != "":
		exercises, err = repo.ListExercisesByCategory(ctx, cmd.Category)
	default:
		exercises, err = repo.ListExercises(ctx)
	}
	if err != nil {
		return err
	}

	if len(exercises) == 0 {
		cmd.println("No exercises found")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tMUSCLE GROUP\tBODYWEIGHT")
	for _, e := range exercises {
		bodyweight := ""
		if e.IsBodyweight {
			bodyweight = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Category, e.MuscleGroup, bodyweight)
	}
	return tw.Flush()
}

func filterCategory(exercises []entities.Exercise, category string) []entities.Exercise {
	var filtered []entities.Exercise
	for _, e := range exercises {
		if strings.EqualFold(e.Category, category) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
