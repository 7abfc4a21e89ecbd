package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/timer"
)

// TimerCommand runs a rest countdown in the terminal until it finishes or
// the process is interrupted.
type TimerCommand struct {
	base
	Seconds int
	Preset  string
	List    bool

	options []timer.Option
}

func NewTimerCommand(cfg *config.Config) *TimerCommand {
	cmd := &TimerCommand{base: newBase(cfg), Seconds: 90}
	if cfg != nil && cfg.Timer.DefaultRestSeconds > 0 {
		cmd.Seconds = cfg.Timer.DefaultRestSeconds
	}
	return cmd
}

func (cmd *TimerCommand) ParseFlags(args []string) error {
	fs := cmd.flagSet("timer", "timer [-seconds n | -preset <name> | -list]")
	fs.IntVar(&cmd.Seconds, "seconds", cmd.Seconds, "Rest length in seconds")
	fs.StringVar(&cmd.Preset, "preset", "", "Use a named rest preset, e.g. \"Compound Lifts\"")
	fs.BoolVar(&cmd.List, "list", false, "List the rest presets and quick-add deltas and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Preset != "" {
		preset, ok := timer.FindPreset(cmd.Preset)
		if !ok {
			return fmt.Errorf("unknown preset %q (see -list)", cmd.Preset)
		}
		cmd.Seconds = preset.Seconds
	}
	if cmd.Seconds < 0 {
		return fmt.Errorf("-seconds must not be negative")
	}
	return nil
}

func (cmd *TimerCommand) Run() error {
	if cmd.List {
		tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
		for _, p := range timer.RestPresets {
			fmt.Fprintf(tw, "%s\t%s\n", p.Name, timer.FormatTime(p.Seconds))
		}
		fmt.Fprintf(tw, "Quick add\t%s\n", timer.QuickAddLabel())
		return tw.Flush()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.countdown(ctx)
}

func (cmd *TimerCommand) countdown(ctx context.Context) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := timer.New(cmd.options...)
	finished := make(chan struct{})
	states := t.Watch(watchCtx)
	t.Start(cmd.Seconds, func() { close(finished) })

	last := -1
	for {
		select {
		case <-finished:
			cmd.printf("\r%s\nRest over, next set!\n", timer.FormatTime(0))
			return nil
		case <-ctx.Done():
			t.Stop()
			cmd.printf("\nStopped with %s left\n", timer.FormatTime(t.State().CurrentSeconds))
			return nil
		case state, ok := <-states:
			if !ok {
				states = nil
				continue
			}
			if state.CurrentSeconds != last && !state.IsFinished {
				last = state.CurrentSeconds
				cmd.printf("\r%s", timer.FormatTime(state.CurrentSeconds))
			}
		}
	}
}
