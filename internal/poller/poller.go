// Package poller runs an action immediately and then on a fixed interval.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Action is invoked on every tick. It runs on the poller goroutine and must not
// call Stop, SetEnabled or SetInterval on its own poller and then wait for it.
// Invocations never overlap: after a restart the new schedule's first
// invocation waits for one still running from the old schedule.
type Action func(ctx context.Context)

// ErrInvalidInterval is returned for a non-positive interval.
var ErrInvalidInterval = errors.New("poller: interval must be positive")

// Poller is a cancellable scheduled task. The zero value is not usable; call New.
type Poller struct {
	mu       sync.Mutex
	action   Action
	interval time.Duration
	enabled  bool
	started  bool
	parent   context.Context
	cancel   context.CancelFunc
	gen      uint64
	done     chan struct{} // closed when the latest run goroutine exits
	wg       sync.WaitGroup
}

// Option configures a Poller.
type Option func(*Poller)

// WithEnabled sets the initial enabled state. Pollers start enabled.
func WithEnabled(enabled bool) Option {
	return func(p *Poller) { p.enabled = enabled }
}

// New returns a stopped poller.
func New(action Action, interval time.Duration, opts ...Option) (*Poller, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	p := &Poller{
		action:   action,
		interval: interval,
		enabled:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Start begins polling under ctx. When the poller is enabled the action runs
// right away. Calling Start on a started poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true
	p.parent = ctx
	if p.enabled {
		p.launchLocked()
	}
}

// Stop halts polling. Once Stop returns no scheduled tick invokes the action,
// including a tick that has already fired; an invocation already dispatched is
// allowed to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.haltLocked()
	p.started = false
}

// Wait blocks until the polling goroutine has exited.
func (p *Poller) Wait() {
	p.wg.Wait()
}

// SetEnabled toggles polling. Disabling suppresses every invocation, including
// the immediate one; re-enabling fires immediately and restarts the schedule.
func (p *Poller) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled == enabled {
		return
	}
	p.enabled = enabled
	if !p.started {
		return
	}
	if enabled {
		p.launchLocked()
	} else {
		p.haltLocked()
	}
}

// Enabled reports whether the poller is enabled.
func (p *Poller) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// SetAction replaces the action; the next firing uses it.
func (p *Poller) SetAction(action Action) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.action = action
}

// SetInterval changes the period and restarts the schedule with an immediate
// invocation, like re-enabling.
func (p *Poller) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interval == interval {
		return nil
	}
	p.interval = interval
	if p.started && p.enabled {
		p.haltLocked()
		p.launchLocked()
	}
	return nil
}

// Interval returns the current period.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

func (p *Poller) launchLocked() {
	p.gen++
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel

	prev := p.done
	done := make(chan struct{})
	p.done = done

	p.wg.Add(1)
	go p.run(ctx, p.gen, p.interval, prev, done)
}

func (p *Poller) haltLocked() {
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller) run(ctx context.Context, gen uint64, interval time.Duration, prev <-chan struct{}, done chan<- struct{}) {
	defer p.wg.Done()
	defer close(done)

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return
		}
	}

	p.fire(ctx, gen)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fire(ctx, gen)
		}
	}
}

// fire invokes the latest action unless the schedule that produced this tick
// has been superseded or cancelled.
func (p *Poller) fire(ctx context.Context, gen uint64) {
	p.mu.Lock()
	if p.gen != gen || ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	action := p.action
	p.mu.Unlock()

	if action != nil {
		action(ctx)
	}
}
