package countdown

import (
	"context"
	"sync"
	"time"
)

// Ticker is the subset of time.Ticker the timer needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker returns a Ticker firing every d.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Config configures a Timer.
type Config struct {
	Initial State
	Restart State
	Mode    Mode
	// Interval defaults to one second.
	Interval time.Duration
	// NewTicker defaults to a time.Ticker.
	NewTicker func(time.Duration) Ticker
	// OnTick is called after every tick with the new state.
	OnTick func(State)
}

// Timer owns a running countdown. The zero value is not usable; use New.
type Timer struct {
	cfg Config

	mu      sync.Mutex
	state   State
	active  bool
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a stopped timer showing cfg.Initial.
func New(cfg Config) *Timer {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewTicker
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeWrap
	}
	if cfg.Restart == (State{}) {
		cfg.Restart = DefaultRestart
	}
	return &Timer{cfg: cfg, state: cfg.Initial, active: true}
}

// Start begins ticking on a new goroutine. Calling Start on a running timer
// is a no-op. The goroutine exits when ctx is cancelled or Stop is called.
func (t *Timer) Start(ctx context.Context) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.running = true
	t.done = make(chan struct{})
	done := t.done
	t.mu.Unlock()

	ticker := t.cfg.NewTicker(t.cfg.Interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if !t.advance() {
					return
				}
			}
		}
	}()
}

// advance applies one tick. It returns false when the loop should exit.
func (t *Timer) advance() bool {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return true
	}
	next, ok := Step(t.state, t.cfg.Restart)
	keepRunning := true
	if !ok && t.cfg.Mode == ModeHalt {
		next = State{}
		t.active = false
		keepRunning = false
	}
	t.state = next
	onTick := t.cfg.OnTick
	t.mu.Unlock()

	if onTick != nil {
		onTick(next)
	}
	if !keepRunning {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}
	return keepRunning
}

// Stop cancels the tick goroutine and waits for it to release its ticker.
func (t *Timer) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.running = false
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Active reports whether ticks currently change the state.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Pause keeps the goroutine alive but freezes the state.
func (t *Timer) Pause() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// Resume unfreezes a paused timer.
func (t *Timer) Resume() {
	t.mu.Lock()
	t.active = true
	t.mu.Unlock()
}

// Reset restores the initial state and reactivates the timer. A halted
// timer must be started again.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.state = t.cfg.Initial
	t.active = true
	t.mu.Unlock()
}
