package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/gymclock/internal/config"
)

// SplitsCommand lists the predefined training splits and their week layout.
type SplitsCommand struct {
	base
	Templates bool
}

func NewSplitsCommand(cfg *config.Config) *SplitsCommand {
	return &SplitsCommand{base: newBase(cfg)}
}

func (cmd *SplitsCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("splits", "splits [-templates] [options]")
	fs.BoolVar(&cmd.Templates, "templates", false, "Also print the exercises of every program day")
	return fs.Parse(args)
}

func (cmd *SplitsCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	splits, err := repo.ListSplits(ctx)
	if err != nil {
		return err
	}
	if len(splits) == 0 {
		cmd.println("No splits available")
		return nil
	}

	for i, split := range splits {
		if i > 0 {
			cmd.println()
		}
		cmd.printf("%s (%s)\n", split.Name, split.ID)
		cmd.printf("  %s, %s, %d days/week, source: %s\n",
			split.Difficulty, split.Category, split.DaysPerWeek, split.Source)
		if split.Description != "" {
			cmd.printf("  %s\n", split.Description)
		}

		layout, err := repo.GetSplitLayout(ctx, split.ID)
		if err != nil {
			return err
		}
		days := make([]string, 0, len(layout))
		for _, d := range layout {
			days = append(days, fmt.Sprintf("%s %s", d.Weekday[:3], d.Plan))
		}
		if len(days) > 0 {
			cmd.printf("  Week: %s\n", strings.Join(days, ", "))
		}

		if !cmd.Templates {
			continue
		}
		templates, err := repo.GetSplitTemplates(ctx, split.ID)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
		for _, t := range templates {
			fmt.Fprintf(tw, "    %s\t%s\t%s x %s\trest %ds\n", t.Day, t.ExerciseName, t.Sets, t.Reps, t.RestTime)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// ApplySplitCommand replaces the week's plan with a predefined split.
type ApplySplitCommand struct {
	base
	SplitID      string
	WorkoutsOnly bool
}

func NewApplySplitCommand(cfg *config.Config) *ApplySplitCommand {
	return &ApplySplitCommand{base: newBase(cfg)}
}

func (cmd *ApplySplitCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("apply-split", "apply-split -id <split id> [options]")
	fs.StringVar(&cmd.SplitID, "id", "", "Split ID as shown by 'splits', e.g. ppl (required)")
	fs.BoolVar(&cmd.WorkoutsOnly, "workouts-only", false, "Keep the current schedule and only replace the workouts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.SplitID = strings.TrimSpace(cmd.SplitID)
	if cmd.SplitID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *ApplySplitCommand) Run() error {
	ctx := context.Background()
	repo, closeDB, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	split, err := repo.GetSplit(ctx, cmd.SplitID)
	if err != nil {
		return err
	}
	if split == nil {
		return fmt.Errorf("split %q not found", cmd.SplitID)
	}

	if !cmd.WorkoutsOnly {
		if err := repo.ApplySplitToSchedule(ctx, cmd.SplitID); err != nil {
			return fmt.Errorf("failed to apply schedule: %w", err)
		}
	}
	result, err := repo.ApplySplit(ctx, cmd.SplitID)
	if err != nil {
		return fmt.Errorf("failed to apply split: %w", err)
	}

	cmd.printf("Applied %s\n", split.Name)
	cmd.printf("Templates found: %d\n", result.TemplatesFound)
	cmd.printf("Workouts removed: %d\n", result.WorkoutsDeleted)
	cmd.printf("Workouts planned: %d\n", result.WorkoutsInserted)
	if result.Skipped > 0 {
		cmd.printf("Templates skipped: %d\n", result.Skipped)
	}
	return nil
}
