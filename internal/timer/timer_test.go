package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock hands out tickers that only fire when the test says so.
type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

type fakeTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

func (f *fakeClock) newTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft := &fakeTicker{c: make(chan time.Time)}
	f.tickers = append(f.tickers, ft)
	return ft
}

func (f *fakeClock) latest() *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickers[len(f.tickers)-1]
}

func (f *fakeClock) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// tick fires the current ticker once and waits for the loop to pick it up.
func (f *fakeClock) tick(t *testing.T) {
	t.Helper()
	select {
	case f.latest().c <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("tick loop is not listening")
	}
}

// offerTick sends a tick only if a loop happens to be listening.
func offerTick(ft *fakeTicker) {
	select {
	case ft.c <- time.Now():
	case <-time.After(20 * time.Millisecond):
	}
}

func newTestTimer() (*Timer, *fakeClock) {
	clock := &fakeClock{}
	return New(WithTicker(clock.newTicker)), clock
}

func waitForCurrent(t *testing.T, tm *Timer, expected int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return tm.State().CurrentSeconds == expected
	}, time.Second, time.Millisecond, "expected current seconds %d, got %d", expected, tm.State().CurrentSeconds)
}

func TestTimer_CountsDownToZero(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	const total = 5
	tm.Start(total, func() { finished.Add(1) })
	assert.Equal(t, State{CurrentSeconds: total, TotalSeconds: total, IsRunning: true}, tm.State())

	for i := 1; i <= total; i++ {
		clock.tick(t)
		waitForCurrent(t, tm, total-i)
		if i < total {
			assert.False(t, tm.State().IsFinished, "finished early at tick %d", i)
			assert.Equal(t, int32(0), finished.Load())
		}
	}

	require.Eventually(t, func() bool { return finished.Load() == 1 }, time.Second, time.Millisecond)
	state := tm.State()
	assert.True(t, state.IsFinished)
	assert.False(t, state.IsRunning)
	assert.Equal(t, total, state.TotalSeconds)
	require.Eventually(t, func() bool { return clock.latest().stopped.Load() }, time.Second, time.Millisecond)

	// the loop is gone: nothing else happens
	assert.Equal(t, int32(1), finished.Load())
}

func TestTimer_PauseFreezes(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(3, func() { finished.Add(1) })
	clock.tick(t)
	waitForCurrent(t, tm, 2)

	tm.Pause()
	state := tm.State()
	assert.True(t, state.IsPaused)
	assert.True(t, state.IsRunning)
	assert.Equal(t, 2, state.CurrentSeconds)

	// a late tick, if the paused loop still sees it, changes nothing
	offerTick(clock.latest())
	assert.Equal(t, 2, tm.State().CurrentSeconds)
	assert.False(t, tm.State().IsFinished)
	assert.Equal(t, int32(0), finished.Load())

	tm.Reset()
}

func TestTimer_ResumeContinuesFromFrozenValue(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(4, func() { finished.Add(1) })
	clock.tick(t)
	waitForCurrent(t, tm, 3)
	tm.Pause()

	tm.Resume()
	assert.False(t, tm.State().IsPaused)
	assert.Equal(t, 2, clock.count())

	for expected := 2; expected >= 0; expected-- {
		clock.tick(t)
		waitForCurrent(t, tm, expected)
	}

	require.Eventually(t, func() bool { return tm.State().IsFinished }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), finished.Load())
}

func TestTimer_ResumeWithoutPauseIsNoop(t *testing.T) {
	tm, clock := newTestTimer()

	tm.Resume()
	assert.Equal(t, State{}, tm.State())
	assert.Equal(t, 0, clock.count())

	tm.Start(10, nil)
	tm.Resume()
	assert.Equal(t, 1, clock.count())
	tm.Reset()
}

func TestTimer_ResetReturnsToIdle(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(3, func() { finished.Add(1) })
	clock.tick(t)
	waitForCurrent(t, tm, 2)

	tm.Reset()
	assert.Equal(t, State{}, tm.State())

	offerTick(clock.latest())
	assert.Equal(t, State{}, tm.State())
	assert.Equal(t, int32(0), finished.Load())
}

func TestTimer_StopKeepsCounters(t *testing.T) {
	tm, clock := newTestTimer()

	tm.Start(10, nil)
	clock.tick(t)
	waitForCurrent(t, tm, 9)

	tm.Stop()
	assert.Equal(t, State{CurrentSeconds: 9, TotalSeconds: 10}, tm.State())

	// stopped is not paused, resume does nothing
	tm.Resume()
	assert.Equal(t, 1, clock.count())
}

func TestTimer_AddTimeWhileRunning(t *testing.T) {
	tm, clock := newTestTimer()

	tm.Start(10, nil)
	clock.tick(t)
	waitForCurrent(t, tm, 9)

	tm.AddTime(30)
	state := tm.State()
	assert.Equal(t, 39, state.CurrentSeconds)
	assert.Equal(t, 40, state.TotalSeconds)
	assert.True(t, state.IsRunning)
	assert.False(t, state.IsPaused)

	// the running loop keeps counting from the new value
	clock.tick(t)
	waitForCurrent(t, tm, 38)
	tm.Reset()
}

func TestTimer_StartSupersedesPreviousLoop(t *testing.T) {
	tm, clock := newTestTimer()
	var first, second atomic.Int32

	tm.Start(1, func() { first.Add(1) })
	previous := clock.latest()

	tm.Start(2, func() { second.Add(1) })
	assert.Equal(t, State{CurrentSeconds: 2, TotalSeconds: 2, IsRunning: true}, tm.State())

	offerTick(previous)
	assert.Equal(t, 2, tm.State().CurrentSeconds)

	clock.tick(t)
	waitForCurrent(t, tm, 1)
	clock.tick(t)
	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestTimer_StartZeroFinishesImmediately(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(0, func() { finished.Add(1) })

	assert.Equal(t, State{IsFinished: true}, tm.State())
	assert.Equal(t, int32(1), finished.Load())
	assert.Equal(t, 0, clock.count())
}

func TestTimer_StartNegativeNeverTicks(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(-5, func() { finished.Add(1) })
	assert.Equal(t, 0, clock.count())

	state := tm.State()
	assert.Equal(t, -5, state.CurrentSeconds)
	assert.True(t, state.IsRunning)
	assert.False(t, state.IsFinished)
	assert.Equal(t, int32(0), finished.Load())
}

func TestTimer_PauseIdleOnlyMarksPaused(t *testing.T) {
	tm, clock := newTestTimer()

	tm.Pause()
	assert.Equal(t, State{IsPaused: true}, tm.State())

	// nothing was running, so resuming starts nothing
	tm.Resume()
	assert.Equal(t, State{}, tm.State())
	assert.Equal(t, 0, clock.count())
}

func TestTimer_ResumeDrainedFinishes(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(3, func() { finished.Add(1) })
	tm.Pause()
	tm.AddTime(-3)
	tm.Resume()

	assert.Equal(t, State{IsFinished: true}, tm.State())
	assert.Equal(t, int32(1), finished.Load())
	assert.Equal(t, 1, clock.count())
}

func TestTimer_AddTimeDrainFinishesOnNextTick(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(5, func() { finished.Add(1) })
	clock.tick(t)
	waitForCurrent(t, tm, 4)

	tm.AddTime(-10)
	assert.True(t, tm.State().IsRunning)

	clock.tick(t)
	require.Eventually(t, func() bool { return finished.Load() == 1 }, time.Second, time.Millisecond)
	state := tm.State()
	assert.True(t, state.IsFinished)
	assert.False(t, state.IsRunning)
	assert.Equal(t, -6, state.CurrentSeconds)
	require.Eventually(t, func() bool { return clock.latest().stopped.Load() }, time.Second, time.Millisecond)
}

func TestTimer_AddTimeStartsLoopAfterNegativeStart(t *testing.T) {
	tm, clock := newTestTimer()
	var finished atomic.Int32

	tm.Start(-5, func() { finished.Add(1) })
	assert.Equal(t, 0, clock.count())

	tm.AddTime(7)
	assert.Equal(t, 1, clock.count())

	clock.tick(t)
	waitForCurrent(t, tm, 1)
	clock.tick(t)
	require.Eventually(t, func() bool { return finished.Load() == 1 }, time.Second, time.Millisecond)
	assert.True(t, tm.State().IsFinished)
}

func TestTimer_WatchPublishesEveryDecrement(t *testing.T) {
	tm, clock := newTestTimer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := tm.Watch(ctx)
	next := func() State {
		t.Helper()
		select {
		case s := <-updates:
			return s
		case <-time.After(time.Second):
			t.Fatal("no state published")
		}
		return State{}
	}
	assert.Equal(t, State{}, next())

	tm.Start(3, nil)
	assert.Equal(t, 3, next().CurrentSeconds)

	for expected := 2; expected >= 0; expected-- {
		clock.tick(t)
		assert.Equal(t, expected, next().CurrentSeconds)
	}
	require.Eventually(t, func() bool { return tm.State().IsFinished }, time.Second, time.Millisecond)
}

func TestTimer_WallClock(t *testing.T) {
	tm := New(WithInterval(5 * time.Millisecond))
	done := make(chan struct{})

	tm.Start(3, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not finish")
	}
	assert.Equal(t, State{TotalSeconds: 3, IsFinished: true}, tm.State())
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00", FormatTime(0))
	assert.Equal(t, "01:30", FormatTime(90))
	assert.Equal(t, "05:00", FormatTime(300))
	assert.Equal(t, "61:01", FormatTime(3661))
	assert.Equal(t, "-00:05", FormatTime(-5))
}

func TestFindPreset(t *testing.T) {
	p, ok := FindPreset(" powerlifting ")
	require.True(t, ok)
	assert.Equal(t, 300, p.Seconds)

	_, ok = FindPreset("nap")
	assert.False(t, ok)
}
