package player

import (
	"context"
	"sync/atomic"

	"termreel/internal/clock"
)

// Reason identifies who asked for a pause. Playback resumes only once every
// reason has been cleared.
type Reason uint32

const (
	// ReasonHidden is set while the hosting terminal is not visible.
	ReasonHidden Reason = 1 << iota
	// ReasonUser is set by an explicit pause request.
	ReasonUser
	// ReasonMinimized is set while the window is collapsed to its title bar.
	ReasonMinimized
)

// Pause is the pause signal shared by every engine of one player.
type Pause struct {
	reasons atomic.Uint32
}

// Set adds or clears r.
func (p *Pause) Set(r Reason, on bool) {
	for {
		old := p.reasons.Load()
		next := old &^ uint32(r)
		if on {
			next = old | uint32(r)
		}
		if p.reasons.CompareAndSwap(old, next) {
			return
		}
	}
}

// Toggle flips r and reports whether it is now set.
func (p *Pause) Toggle(r Reason) bool {
	for {
		old := p.reasons.Load()
		next := old ^ uint32(r)
		if p.reasons.CompareAndSwap(old, next) {
			return next&uint32(r) != 0
		}
	}
}

// Paused reports whether any reason is set.
func (p *Pause) Paused() bool {
	return p.reasons.Load() != 0
}

// Wait returns once the signal is clear, polling every PollInterval.
func (p *Pause) Wait(ctx context.Context, c clock.Clock) error {
	for p.Paused() {
		if err := c.Sleep(ctx, PollInterval); err != nil {
			return err
		}
	}
	return ctx.Err()
}
