package app

import (
	"sync"
	"time"

	"terminal-trivia/internal/domain"
)

// Countdown ticks a shared remaining-seconds counter down on its own goroutine.
// All state is guarded by mu; readers never block on the ticking goroutine.
type Countdown struct {
	tick time.Duration

	mu        sync.Mutex
	remaining int
	running   bool
	expired   bool
	stop      chan struct{}
	done      chan struct{}
}

// NewCountdown returns a stopped countdown that decrements once per tick.
// A zero tick means one second.
func NewCountdown(tick time.Duration) *Countdown {
	if tick <= 0 {
		tick = time.Second
	}
	return &Countdown{tick: tick}
}

// Start begins counting down from seconds.
func (c *Countdown) Start(seconds int) error {
	if seconds <= 0 {
		return domain.ErrInvalidDuration
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return domain.ErrCountdownRunning
	}
	// A previous run that expired on its own has already exited; reap it.
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return domain.ErrCountdownRunning
	}
	c.remaining = seconds
	c.expired = false
	c.running = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
	return nil
}

func (c *Countdown) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			c.mu.Lock()
			c.running = false
			c.mu.Unlock()
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.remaining > 0 {
				c.remaining--
			}
			if c.remaining == 0 {
				c.expired = true
				c.running = false
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		}
	}
}

// Stop halts the countdown and waits for its goroutine to exit.
// Nothing mutates the countdown after Stop returns. Stopping an idle countdown is a no-op.
func (c *Countdown) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if done == nil {
		return
	}
	select {
	case <-done:
	default:
		close(stop)
		<-done
	}

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// Reset stops a running countdown and rearms it with a fresh duration.
func (c *Countdown) Reset(seconds int) error {
	if seconds <= 0 {
		return domain.ErrInvalidDuration
	}
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = seconds
	c.expired = false
	return nil
}

// Remaining returns the seconds left, clamped at zero.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired is sticky until Reset or Start.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Running is true from Start until expiry or Stop.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
