package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/mrlokans/gymclock/internal/config"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=scheduler_test

// WeekResetter clears the completion flags of the weekly plan.
type WeekResetter interface {
	ResetWeek(ctx context.Context) (int64, error)
}

// RolloverScheduler resets the weekly plan on a cron schedule while the
// process runs. Missed runs are not caught up after a restart.
type RolloverScheduler struct {
	resetter WeekResetter
	cfg      config.Rollover

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewRolloverScheduler(resetter WeekResetter, cfg config.Rollover) *RolloverScheduler {
	return &RolloverScheduler{
		resetter: resetter,
		cfg:      cfg,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cron.PrintfLogger(log.StandardLogger())),
		),
	}
}

// Start begins the scheduler if rollover is enabled. It stops on its own
// when ctx is done.
func (s *RolloverScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Info("rollover scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runRollover(jobCtx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule rollover job: %w", err)
	}
	s.entryID = entryID
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.cfg.Schedule, time.Now())
	log.Infof("rollover scheduler: started with schedule '%s' (%s). Next run: %v",
		s.cfg.Schedule,
		GetCronDescription(s.cfg.Schedule),
		nextRun)

	go func() {
		<-jobCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running reset to finish and stops the scheduler.
func (s *RolloverScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil

	log.Info("rollover scheduler: stopped")
}

// RunNow resets the week immediately, independent of the schedule.
func (s *RolloverScheduler) RunNow(ctx context.Context) (int64, error) {
	return s.resetter.ResetWeek(ctx)
}

func (s *RolloverScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next rollover will occur
func (s *RolloverScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *RolloverScheduler) runRollover(ctx context.Context) {
	start := time.Now()
	n, err := s.resetter.ResetWeek(ctx)
	if err != nil {
		log.WithError(err).Error("rollover: failed to reset week")
		return
	}
	log.WithFields(log.Fields{
		"workouts": n,
		"duration": time.Since(start),
	}).Info("rollover: week reset")
}
