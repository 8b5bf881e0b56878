package core

import "time"

// PreviewDelta is the fixed nominal step fed to kernels when the host cannot
// guarantee monotonic time.
const PreviewDelta = 1.0 / 30

const (
	maxFrameDelta = 0.25
	smoothing     = 0.2
)

// FrameClock measures a smoothed wall-clock delta between host frames.
type FrameClock struct {
	now    func() time.Time
	last   time.Time
	smooth float64
}

// NewFrameClock constructs a FrameClock reading the system clock.
func NewFrameClock() *FrameClock {
	return &FrameClock{now: time.Now}
}

// Tick returns the smoothed number of seconds since the previous Tick. The
// first call reports PreviewDelta. Raw deltas are capped at a quarter second.
func (c *FrameClock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		c.smooth = PreviewDelta
		return c.smooth
	}
	delta := now.Sub(c.last).Seconds()
	c.last = now
	if delta < 0 {
		delta = 0
	}
	if delta > maxFrameDelta {
		delta = maxFrameDelta
	}
	c.smooth += (delta - c.smooth) * smoothing
	return c.smooth
}

// Reset forgets the previous frame time, e.g. after the host was paused.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}
