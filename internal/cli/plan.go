package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/gymclock"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

// PlanCommand adds an exercise to a day's workouts. With -custom the
// exercise is created in the catalog first.
type PlanCommand struct {
	base
	Day      string
	Exercise string
	Form     viewmodel.WorkoutForm

	Custom      bool
	Category    string
	MuscleGroup string
	Bodyweight  bool
}

func NewPlanCommand(cfg *config.Config) *PlanCommand {
	cmd := &PlanCommand{base: newBase(cfg)}
	cmd.Form.RestTime = fmt.Sprint(viewmodel.DefaultRestSeconds)
	if cfg != nil && cfg.Timer.DefaultRestSeconds > 0 {
		cmd.Form.RestTime = fmt.Sprint(cfg.Timer.DefaultRestSeconds)
	}
	return cmd
}

func (cmd *PlanCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("plan", "plan -exercise <name> [-day <day>] [-sets n] [-reps n] [-weight kg] [-rest s] [options]")
	fs.StringVar(&cmd.Day, "day", "", "Day to plan the workout on (default: today)")
	fs.StringVar(&cmd.Exercise, "exercise", "", "Exercise name (required)")
	fs.StringVar(&cmd.Form.Sets, "sets", fmt.Sprint(viewmodel.DefaultSets), "Number of sets")
	fs.StringVar(&cmd.Form.Reps, "reps", fmt.Sprint(viewmodel.DefaultReps), "Reps per set")
	fs.StringVar(&cmd.Form.Weight, "weight", fmt.Sprint(viewmodel.DefaultWeight), "Weight in kg (ignored for bodyweight exercises)")
	fs.StringVar(&cmd.Form.RestTime, "rest", cmd.Form.RestTime, "Rest between sets in seconds")
	fs.BoolVar(&cmd.Custom, "custom", false, "Create the exercise in the catalog first")
	fs.StringVar(&cmd.Category, "category", "Custom", "Category of a -custom exercise")
	fs.StringVar(&cmd.MuscleGroup, "muscle", "", "Muscle group of a -custom exercise")
	fs.BoolVar(&cmd.Bodyweight, "bodyweight", false, "Mark a -custom exercise as bodyweight")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Exercise = strings.TrimSpace(cmd.Exercise)
	if cmd.Exercise == "" {
		return fmt.Errorf("required flag -exercise not provided")
	}

	day, err := cmd.day(cmd.Day)
	if err != nil {
		return err
	}
	cmd.Day = day
	return nil
}

func (cmd *PlanCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	var exercise *entities.Exercise
	if cmd.Custom {
		exercise = &entities.Exercise{
			Name:         cmd.Exercise,
			Category:     cmd.Category,
			MuscleGroup:  cmd.MuscleGroup,
			IsBodyweight: cmd.Bodyweight,
		}
	} else {
		exercise, err = repo.GetExerciseByName(ctx, cmd.Exercise)
		if err != nil {
			return err
		}
		if exercise == nil {
			return fmt.Errorf("%w: %q (use -custom to create it)", gymclock.ErrExerciseNotFound, cmd.Exercise)
		}
	}

	parsed, err := viewmodel.ParseWorkoutForm(cmd.Form, exercise.IsBodyweight)
	if err != nil {
		return err
	}

	order, err := repo.NextWorkoutOrder(ctx, cmd.Day)
	if err != nil {
		return err
	}
	workout := &entities.Workout{
		ExerciseID:      exercise.ID,
		Day:             cmd.Day,
		Sets:            parsed.Sets,
		Reps:            parsed.Reps,
		Weight:          parsed.Weight,
		RestTimeSeconds: parsed.RestTimeSeconds,
		OrderInWorkout:  order,
	}

	if cmd.Custom {
		err = repo.AddCustomExerciseAndWorkout(ctx, exercise, workout)
	} else {
		err = repo.InsertWorkout(ctx, workout)
	}
	if err != nil {
		return fmt.Errorf("failed to plan workout: %w", err)
	}

	cmd.printf("Planned #%d %s on %s: %d x %d @ %s\n",
		workout.ID, exercise.Name, cmd.Day, workout.Sets, workout.Reps, viewmodel.FormatWeight(workout.Weight))
	return nil
}

// CompleteCommand marks a planned workout done and records it in the history.
type CompleteCommand struct {
	base
	WorkoutID uint
}

func NewCompleteCommand(cfg *config.Config) *CompleteCommand {
	return &CompleteCommand{base: newBase(cfg)}
}

func (cmd *CompleteCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("complete", "complete -id <workout id> [options]")
	fs.UintVar(&cmd.WorkoutID, "id", 0, "Workout ID as shown by 'today' (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.WorkoutID == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *CompleteCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	entry, err := repo.CompleteWorkout(ctx, cmd.WorkoutID, cmd.now())
	if err != nil {
		return err
	}

	cmd.printf("Completed workout #%d: %d x %d @ %s\n",
		cmd.WorkoutID, entry.Sets, entry.Reps, viewmodel.FormatWeight(entry.Weight))
	if entry.IsPersonalRecord {
		cmd.println("New personal record!")
	}
	return nil
}
