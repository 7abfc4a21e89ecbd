package entrypoint

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mrlokans/gymclock/internal/timer"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

var intentHelp = `Commands:
  workout <exercise>     plan an exercise for today with the default form values
  complete <id>          mark a workout done
  schedule <plan>        set today's plan, e.g. Push or Rest
  goal <reps> <weight>   set today's goal
  split <id>             apply a predefined split to the whole week
  week                   show the plan of every day
  history                show the latest completed workouts
  rest [seconds|preset]  start the rest timer
  pause | resume | stop | reset
  add [seconds]          extend the running rest, quick adds: ` + timer.QuickAddLabel() + `
  timer                  show the rest timer
  clear                  dismiss the error message
`

// intentHandler turns lines typed in watch mode into view-model intents.
type intentHandler struct {
	vm          *viewmodel.ViewModel
	console     *console
	restSeconds int
}

// readLoop handles one intent per line of in. Nothing is handled before
// the view-model has loaded its first complete snapshot.
func (h *intentHandler) readLoop(ctx context.Context, in io.Reader) {
	if !h.waitLoaded(ctx) {
		return
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		h.handle(ctx, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("stopped reading commands")
	}
}

func (h *intentHandler) waitLoaded(ctx context.Context) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for state := range h.vm.Watch(ctx) {
		if !state.IsLoading {
			return true
		}
	}
	return false
}

func (h *intentHandler) handle(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.Join(args, " ")
	t := h.vm.Timer()

	switch command {
	case "help", "?":
		h.console.printf("%s", intentHelp)

	case "workout":
		h.addWorkout(ctx, rest)

	case "complete", "done":
		id, ok := h.id(args)
		if !ok {
			return
		}
		entry, err := h.vm.CompleteWorkout(ctx, id)
		if err != nil {
			return
		}
		h.console.printf("Logged %d x %d @ %s\n", entry.Sets, entry.Reps, viewmodel.FormatWeight(entry.Weight))
		if entry.IsPersonalRecord {
			h.console.printf("New personal record!\n")
		}

	case "schedule":
		_ = h.vm.UpdateSchedule(ctx, h.vm.State().Today, rest)

	case "goal":
		if len(args) != 2 {
			h.vm.ShowError("usage: goal <reps> <weight>")
			return
		}
		reps, err1 := strconv.Atoi(args[0])
		weight, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			h.vm.ShowError(fmt.Sprintf("invalid goal %q", rest))
			return
		}
		_ = h.vm.UpdateGoal(ctx, h.vm.State().Today, reps, weight)

	case "split":
		result, err := h.vm.ApplySplit(ctx, rest)
		if err != nil {
			return
		}
		h.console.printf("Split applied: %d workouts planned, %d skipped\n", result.WorkoutsInserted, result.Skipped)

	case "week":
		state := h.vm.State()
		if len(state.WeekSchedule) == 0 {
			h.console.printf("No days planned yet\n")
			return
		}
		for _, s := range state.WeekSchedule {
			h.console.printf("%-10s %s\n", s.Day, s.Plan)
		}

	case "history":
		state := h.vm.State()
		if len(state.RecentLogs) == 0 {
			h.console.printf("No completed workouts yet\n")
			return
		}
		names := make(map[uint]string, len(state.AllExercises))
		for _, e := range state.AllExercises {
			names[e.ID] = e.Name
		}
		for _, l := range state.RecentLogs {
			pr := ""
			if l.IsPersonalRecord {
				pr = " PR"
			}
			h.console.printf("%s %s %d x %d @ %s%s\n", l.CompletedAt.Format("2006-01-02 15:04"), names[l.ExerciseID],
				l.Sets, l.Reps, viewmodel.FormatWeight(l.Weight), pr)
		}

	case "rest":
		seconds, ok := h.restLength(rest)
		if !ok {
			return
		}
		// Start(0) fires the callback before returning
		h.console.printf("Rest started: %s\n", timer.FormatTime(seconds))
		h.vm.StartRestTimer(seconds, func() {
			h.console.printf("Rest over, next set!\n")
		})

	case "pause":
		t.Pause()
	case "resume":
		t.Resume()
	case "stop":
		t.Stop()
	case "reset":
		t.Reset()

	case "add":
		if rest == "" {
			t.AddTime(timer.QuickAddSeconds[0])
			return
		}
		delta, err := strconv.Atoi(rest)
		if err != nil {
			h.vm.ShowError(fmt.Sprintf("invalid seconds %q", rest))
			return
		}
		t.AddTime(delta)

	case "timer":
		s := t.State()
		status := "idle"
		switch {
		case s.IsFinished:
			status = "finished"
		case s.IsPaused:
			status = "paused"
		case s.IsRunning:
			status = "running"
		}
		h.console.printf("Rest %s / %s (%s)\n", timer.FormatTime(s.CurrentSeconds), timer.FormatTime(s.TotalSeconds), status)

	case "clear":
		h.vm.ClearError()

	default:
		h.vm.ShowError(fmt.Sprintf("unknown command %q, type help", command))
	}
}

func (h *intentHandler) id(args []string) (uint, bool) {
	if len(args) != 1 {
		h.vm.ShowError("usage: complete <id>")
		return 0, false
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		h.vm.ShowError(fmt.Sprintf("invalid workout id %q", args[0]))
		return 0, false
	}
	return uint(id), true
}

// restLength reads "rest", "rest 120" or "rest Compound Lifts".
func (h *intentHandler) restLength(arg string) (int, bool) {
	if arg == "" {
		if h.restSeconds > 0 {
			return h.restSeconds, true
		}
		return viewmodel.DefaultRestSeconds, true
	}
	if seconds, err := strconv.Atoi(arg); err == nil && seconds >= 0 {
		return seconds, true
	}
	if preset, ok := timer.FindPreset(arg); ok {
		return preset.Seconds, true
	}
	h.vm.ShowError(fmt.Sprintf("invalid rest %q", arg))
	return 0, false
}

func (h *intentHandler) addWorkout(ctx context.Context, name string) {
	for _, e := range h.vm.State().AllExercises {
		if !strings.EqualFold(e.Name, name) {
			continue
		}
		parsed := viewmodel.ParsedWorkout{
			Sets:            viewmodel.DefaultSets,
			Reps:            viewmodel.DefaultReps,
			Weight:          viewmodel.DefaultWeight,
			RestTimeSeconds: h.restSeconds,
		}
		if e.IsBodyweight {
			parsed.Weight = 0
		}
		_ = h.vm.AddWorkout(ctx, e.ID, parsed)
		return
	}
	h.vm.ShowError(fmt.Sprintf("exercise %q not found", name))
}
