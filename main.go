package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mrlokans/gymclock/internal/cli"
	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/entrypoint"
	"github.com/mrlokans/gymclock/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToConsole:  cfg.Log.ToConsole,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.FormatJSON,
	})
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
		}
	}()

	command := "today"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	var cmd cli.Command
	switch command {
	case "watch":
		log.Debugf("commit %s", Commit)
		if err := entrypoint.Run(cfg, Version); err != nil {
			fail(err)
		}
		return
	case "today":
		cmd = cli.NewTodayCommand(cfg)
	case "week":
		cmd = cli.NewWeekCommand(cfg)
	case "schedule":
		cmd = cli.NewScheduleCommand(cfg)
	case "goal":
		cmd = cli.NewGoalCommand(cfg)
	case "exercises":
		cmd = cli.NewExercisesCommand(cfg)
	case "plan":
		cmd = cli.NewPlanCommand(cfg)
	case "complete":
		cmd = cli.NewCompleteCommand(cfg)
	case "splits":
		cmd = cli.NewSplitsCommand(cfg)
	case "apply-split":
		cmd = cli.NewApplySplitCommand(cfg)
	case "history":
		cmd = cli.NewHistoryCommand(cfg)
	case "timer":
		cmd = cli.NewTimerCommand(cfg)
	case "version":
		fmt.Printf("gymclock %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fail(err)
	}
	if err := cmd.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  today        Show today's plan, goal and workouts (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  week         Show the schedule of the whole week\n")
	fmt.Fprintf(os.Stderr, "  schedule     Set the plan of a day\n")
	fmt.Fprintf(os.Stderr, "  goal         Set the rep and weight goal of a day\n")
	fmt.Fprintf(os.Stderr, "  exercises    List and search the exercise catalog\n")
	fmt.Fprintf(os.Stderr, "  plan         Add an exercise to a day's workouts\n")
	fmt.Fprintf(os.Stderr, "  complete     Mark a workout done and log it\n")
	fmt.Fprintf(os.Stderr, "  splits       List the predefined training splits\n")
	fmt.Fprintf(os.Stderr, "  apply-split  Replace the week's plan with a predefined split\n")
	fmt.Fprintf(os.Stderr, "  history      Show completed workouts\n")
	fmt.Fprintf(os.Stderr, "  timer        Run a rest timer in the terminal\n")
	fmt.Fprintf(os.Stderr, "  watch        Follow today's plan live, with the weekly rollover running\n")
	fmt.Fprintf(os.Stderr, "  version      Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
