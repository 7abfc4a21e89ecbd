package entrypoint

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/mrlokans/gymclock/internal/timer"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

// console serialises writes from the renderer, the intent reader and the
// rest timer callback.
type console struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// render prints every settled snapshot until ctx is done.
func render(ctx context.Context, vm *viewmodel.ViewModel, c *console) {
	for state := range vm.Watch(ctx) {
		if state.IsLoading {
			continue
		}
		c.printf("%s", formatState(state))
	}
}

func formatState(state viewmodel.UIState) string {
	var b strings.Builder

	plan := "not planned"
	if state.TodaySchedule != nil {
		plan = state.TodaySchedule.Plan
	}
	fmt.Fprintf(&b, "\n== %s: %s ==\n", state.Today, plan)
	if state.TodayGoal != nil {
		fmt.Fprintf(&b, "Goal: %d reps @ %d kg\n", state.TodayGoal.Reps, state.TodayGoal.Weight)
	}

	if len(state.TodayWorkouts) == 0 {
		b.WriteString("No workouts planned\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, w := range state.TodayWorkouts {
			mark := "[ ]"
			if w.IsCompleted {
				mark = "[x]"
			}
			fmt.Fprintf(tw, "  %s\t#%d\t%s\t%d x %d\t%s\trest %s\n",
				mark, w.ID, w.ExerciseName, w.Sets, w.Reps,
				viewmodel.FormatWeight(w.Weight), timer.FormatTime(w.RestTimeSeconds))
		}
		tw.Flush()
	}

	fmt.Fprintf(&b, "%d exercises, %d splits available\n", len(state.AllExercises), len(state.PredefinedSplits))
	if state.ErrorMessage != "" {
		fmt.Fprintf(&b, "Error: %s\n", state.ErrorMessage)
	}
	return b.String()
}
