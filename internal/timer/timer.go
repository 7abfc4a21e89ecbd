// Package timer implements the rest-interval countdown.
//
// A Timer owns at most one tick loop at a time. Start and Resume cancel the
// previous loop before launching a new one, and every decrement is applied
// under the timer's lock only while the loop that produced it is still the
// current one, so a superseded loop can neither decrement nor finish.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/mrlokans/gymclock/internal/live"

	log "github.com/sirupsen/logrus"
)

const stateTopic = "timer"

// State is a snapshot of the countdown.
type State struct {
	CurrentSeconds int  `json:"current_seconds"`
	TotalSeconds   int  `json:"total_seconds"`
	IsRunning      bool `json:"is_running"`
	IsPaused       bool `json:"is_paused"`
	IsFinished     bool `json:"is_finished"`
}

// Ticker delivers one value per tick until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type Option func(*Timer)

// WithTicker replaces the wall-clock ticker, mostly for tests.
func WithTicker(newTicker TickerFunc) Option {
	return func(t *Timer) {
		t.newTicker = newTicker
	}
}

// WithInterval changes the tick length (one second by default).
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		t.interval = d
	}
}

type Timer struct {
	mu         sync.Mutex
	state      State
	onFinished func()

	// generation identifies the current tick loop; cancel stops it.
	generation uint64
	cancel     context.CancelFunc

	interval  time.Duration
	newTicker TickerFunc
	hub       *live.Hub
}

func New(opts ...Option) *Timer {
	t := &Timer{
		interval:  time.Second,
		newTicker: newWallTicker,
		hub:       live.NewHub(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current snapshot.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Watch streams the timer state, starting with the current one, until ctx
// is done. A slow reader skips intermediate states but always sees the
// latest.
func (t *Timer) Watch(ctx context.Context) <-chan State {
	return live.Watch(ctx, t.hub, func(context.Context) (State, error) {
		return t.State(), nil
	}, stateTopic)
}

// Start begins a countdown of seconds, replacing any countdown in flight.
// onFinished, if not nil, is called once when the countdown reaches zero.
// Zero seconds finishes immediately; a negative value leaves the timer
// running without ticking.
func (t *Timer) Start(seconds int, onFinished func()) {
	t.mu.Lock()
	t.cancelLoopLocked()
	t.onFinished = onFinished
	t.state = State{
		CurrentSeconds: seconds,
		TotalSeconds:   seconds,
		IsRunning:      true,
	}

	if seconds == 0 {
		callback := t.finishLocked()
		t.mu.Unlock()
		t.hub.Publish(stateTopic)
		if callback != nil {
			callback()
		}
		return
	}

	t.startLoopLocked()
	t.mu.Unlock()
	t.hub.Publish(stateTopic)
}

// Pause freezes the countdown. No callback fires while paused.
func (t *Timer) Pause() {
	t.mu.Lock()
	if t.state.IsPaused {
		t.mu.Unlock()
		return
	}
	t.cancelLoopLocked()
	t.state.IsPaused = true
	t.mu.Unlock()
	t.hub.Publish(stateTopic)
}

// Resume continues a paused countdown from where it stopped. A countdown
// that AddTime drained to zero or below finishes right away.
func (t *Timer) Resume() {
	t.mu.Lock()
	if !t.state.IsPaused {
		t.mu.Unlock()
		return
	}
	t.cancelLoopLocked()
	t.state.IsPaused = false

	var callback func()
	if t.state.IsRunning {
		if t.state.CurrentSeconds <= 0 {
			callback = t.finishLocked()
		} else {
			t.startLoopLocked()
		}
	}
	t.mu.Unlock()
	t.hub.Publish(stateTopic)
	if callback != nil {
		callback()
	}
}

// Reset cancels the countdown and returns to the idle state.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.cancelLoopLocked()
	t.state = State{}
	t.onFinished = nil
	t.mu.Unlock()
	t.hub.Publish(stateTopic)
}

// Stop cancels the countdown but keeps the counters. The timer is not
// marked finished.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.cancelLoopLocked()
	t.state.IsRunning = false
	t.state.IsPaused = false
	t.mu.Unlock()
	t.hub.Publish(stateTopic)
}

// AddTime adds delta seconds to both the remaining and the total time.
// There is no bound check: a running countdown pushed to zero or below
// finishes on its next tick, and a running timer without a tick loop (one
// started with negative seconds) starts ticking once it has time left.
func (t *Timer) AddTime(delta int) {
	t.mu.Lock()
	t.state.CurrentSeconds += delta
	t.state.TotalSeconds += delta
	if t.state.IsRunning && !t.state.IsPaused && t.cancel == nil {
		t.startLoopLocked()
	}
	t.mu.Unlock()
	t.hub.Publish(stateTopic)
}

func (t *Timer) cancelLoopLocked() {
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Timer) startLoopLocked() {
	if t.state.CurrentSeconds <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	generation := t.generation
	// created here so the ticker exists once Start/Resume return
	ticker := t.newTicker(t.interval)

	go t.loop(ctx, generation, ticker)
}

func (t *Timer) loop(ctx context.Context, generation uint64, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		done, callback := t.tick(generation)
		if callback != nil {
			callback()
		}
		if done {
			return
		}
	}
}

// tick applies one decrement for the loop identified by generation. It
// reports whether the loop must exit and the completion callback to run,
// if the countdown just finished.
func (t *Timer) tick(generation uint64) (bool, func()) {
	t.mu.Lock()
	if generation != t.generation || !t.state.IsRunning || t.state.IsPaused {
		t.mu.Unlock()
		return true, nil
	}
	// AddTime may have drained the count already
	if t.state.CurrentSeconds > 0 {
		t.state.CurrentSeconds--
	}
	var (
		done     bool
		callback func()
	)
	if t.state.CurrentSeconds <= 0 {
		done = true
		callback = t.finishLocked()
		if t.cancel != nil {
			t.cancel()
			t.cancel = nil
		}
	}
	t.mu.Unlock()

	t.hub.Publish(stateTopic)
	if done {
		log.Debugf("rest timer finished after %d seconds", t.State().TotalSeconds)
	}
	return done, callback
}

func (t *Timer) finishLocked() func() {
	t.state.IsRunning = false
	t.state.IsFinished = true
	callback := t.onFinished
	t.onFinished = nil
	return callback
}

type wallTicker struct {
	ticker *time.Ticker
}

func newWallTicker(d time.Duration) Ticker {
	return &wallTicker{ticker: time.NewTicker(d)}
}

func (w *wallTicker) C() <-chan time.Time {
	return w.ticker.C
}

func (w *wallTicker) Stop() {
	w.ticker.Stop()
}
