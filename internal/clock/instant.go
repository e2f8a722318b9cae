package clock

import (
	"context"
	"sync"
	"time"
)

// Instant never blocks. It advances its own notion of time by every
// requested duration, which makes it suitable for rendering a whole script
// at once and for capturing each frame in tests.
type Instant struct {
	// OnSleep, when set, runs before each sleep returns.
	OnSleep func(d time.Duration)

	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func (c *Instant) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Instant) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
	c.mu.Unlock()
	if c.OnSleep != nil {
		c.OnSleep(d)
	}
	return nil
}

// Slept returns every duration passed to Sleep, in order.
func (c *Instant) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

// Elapsed is the sum of all sleeps.
func (c *Instant) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.slept {
		total += d
	}
	return total
}
