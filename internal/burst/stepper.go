package burst

import (
	"errors"
	"fmt"

	"burst/internal/device"
)

// State is the stepper's position in the seed/step cycle.
type State int

const (
	// Uninitialized means no texture holds a committed state.
	Uninitialized State = iota
	// Seeded means the write texture holds a cold-start state.
	Seeded
	// Stepping means the write texture holds a state derived from a previous
	// one.
	Stepping
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case Stepping:
		return "stepping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var errNotBound = errors.New("stepper has no buffers or kernel")

// Stepper drives the kernel over a Pair. A step swaps roles first and then
// reads the previous commit while writing the other texture, so the kernel
// never observes a texel it is producing.
type Stepper struct {
	pair    *Pair
	kernel  device.Kernel
	state   State
	current device.Texture
}

// Bind attaches buffers and kernel and returns the stepper to Uninitialized.
func (s *Stepper) Bind(pair *Pair, kernel device.Kernel) {
	s.pair = pair
	s.kernel = kernel
	s.Invalidate()
}

// Invalidate forgets the committed state; the next Tick seeds again.
func (s *Stepper) Invalidate() {
	s.state = Uninitialized
	s.current = nil
}

// State reports the current state.
func (s *Stepper) State() State { return s.state }

// Current returns the texture holding the last committed state, or nil before
// the first seed.
func (s *Stepper) Current() device.Texture { return s.current }

// Tick runs one simulation step. In live playback an uninitialized stepper
// seeds and then steps; otherwise the write texture is re-seeded every tick
// and the stepper stays Seeded.
func (s *Stepper) Tick(p device.Params, live bool) error {
	if s.pair == nil || s.kernel == nil || !s.pair.Allocated() {
		return errNotBound
	}
	if !live || s.state == Uninitialized {
		if err := s.kernel.Seed(s.pair.Write(), p); err != nil {
			s.Invalidate()
			return fmt.Errorf("seeding state: %w", err)
		}
		s.state = Seeded
		s.current = s.pair.Write()
		if !live {
			return nil
		}
	}

	s.pair.Swap()
	if err := s.kernel.Step(s.pair.Read(), s.pair.Write(), p); err != nil {
		return fmt.Errorf("stepping state: %w", err)
	}
	s.state = Stepping
	s.current = s.pair.Write()
	return nil
}
