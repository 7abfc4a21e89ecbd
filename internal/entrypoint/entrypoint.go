package entrypoint

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/gymclock"
	"github.com/mrlokans/gymclock/internal/scheduler"
	"github.com/mrlokans/gymclock/internal/timer"
	"github.com/mrlokans/gymclock/internal/viewmodel"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context) error

// Serve blocks until SIGINT or SIGTERM arrives (or ctx is done) and then
// runs onShutdown, giving it at most the configured shutdown timeout.
func Serve(ctx context.Context, cfg *config.Config, onShutdown ShutdownFunc) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.Infof("shutting down, waiting %v before giving up", timeout)

	if onShutdown == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- onShutdown(shutdownCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-shutdownCtx.Done():
		return fmt.Errorf("shutdown did not finish within %v", timeout)
	}
}

// Run starts the long-running watch mode: the view-model follows the store
// and every snapshot is printed, lines typed on stdin are turned into
// intents and the weekly rollover runs in the background.
func Run(cfg *config.Config, version string) error {
	return run(context.Background(), cfg, version, os.Stdin, os.Stdout)
}

func run(ctx context.Context, cfg *config.Config, version string, in io.Reader, out io.Writer) (err error) {
	log.Infof("starting GymClock v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	repo := gymclock.NewRepository(db)
	restTimer := timer.New()
	vm := viewmodel.New(repo, restTimer)

	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	if err := vm.Start(appCtx); err != nil {
		return fmt.Errorf("failed to start view-model: %w", err)
	}

	rollover := scheduler.NewRolloverScheduler(repo, cfg.Rollover)
	if err := rollover.Start(appCtx); err != nil {
		log.WithError(err).Warn("weekly rollover disabled")
	}

	console := newConsole(out)
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		render(appCtx, vm, console)
	}()

	intents := &intentHandler{
		vm:          vm,
		console:     console,
		restSeconds: cfg.Timer.DefaultRestSeconds,
	}
	go intents.readLoop(appCtx, in)

	onShutdown := func(ctx context.Context) error {
		cancelApp()
		rollover.Stop()
		restTimer.Stop()

		for _, done := range []<-chan struct{}{vm.Done(), rendered} {
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	return Serve(ctx, cfg, onShutdown)
}
