// Package burst runs the beam burst effect: a grid of beam states advanced by
// a device kernel with ping-pong buffering and drawn through a procedural
// line mesh that addresses one state texel per beam.
//
// The host drives an Effect with one Advance call per display frame.
// Configuration changes are deferred: NotifyConfigChanged only raises a flag
// that the next Advance consumes before stepping.
package burst

import (
	"errors"
	"fmt"

	"burst/internal/core"
	"burst/internal/device"
)

// ErrDisposed is returned by Advance after Dispose.
var ErrDisposed = errors.New("burst: effect disposed")

// Effect owns the state buffers, the mesh, the compiled kernel and the
// shading collaborators of one burst instance.
type Effect struct {
	dev       device.Device
	prog      device.Program
	cfg       Config
	transform Transform

	lines LineRenderer
	debug DebugBlitter

	grid    core.Grid
	pair    Pair
	mesh    *IndexMesh
	kernel  device.Kernel
	stepper Stepper

	pendingReset bool
	disposed     bool
	ticks        uint64
}

// Option configures an Effect at construction.
type Option func(*Effect)

// WithLines sets the line shading collaborator. The effect takes ownership
// and releases it on Dispose.
func WithLines(r LineRenderer) Option {
	return func(e *Effect) { e.lines = r }
}

// WithDebug sets the diagnostic blit collaborator. The effect takes ownership
// and releases it on Dispose.
func WithDebug(d DebugBlitter) Option {
	return func(e *Effect) { e.debug = d }
}

// WithTransform sets the initial host transform.
func WithTransform(t Transform) Option {
	return func(e *Effect) { e.transform = t }
}

// New constructs an effect. No device resources are created until the first
// Advance.
func New(dev device.Device, prog device.Program, cfg Config, opts ...Option) *Effect {
	e := &Effect{
		dev:          dev,
		prog:         prog,
		cfg:          cfg,
		transform:    DefaultTransform(),
		pendingReset: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the active configuration.
func (e *Effect) Config() Config { return e.cfg }

// SetConfig replaces the configuration and schedules a reset.
func (e *Effect) SetConfig(cfg Config) {
	e.cfg = cfg
	e.NotifyConfigChanged()
}

// NotifyConfigChanged schedules a reset at the start of the next Advance.
// Repeated calls before that Advance have the effect of one.
func (e *Effect) NotifyConfigChanged() { e.pendingReset = true }

// SetTransform updates the placement passed to the line renderer.
func (e *Effect) SetTransform(t Transform) { e.transform = t }

// Transform returns the current placement.
func (e *Effect) Transform() Transform { return e.transform }

// Advance performs one frame: a pending reset if any, one simulation step
// and one draw submission. delta is the host frame time in seconds; live
// selects normal stepping, otherwise the state is re-seeded every call. Any
// error is a device failure and is not recoverable.
func (e *Effect) Advance(delta float64, live bool) error {
	if e.disposed {
		return ErrDisposed
	}
	if e.pendingReset {
		if err := e.reset(); err != nil {
			return err
		}
	}
	if err := e.stepper.Tick(e.kernelParams(delta), live); err != nil {
		return fmt.Errorf("advancing burst: %w", err)
	}
	e.ticks++
	return e.submit()
}

func (e *Effect) kernelParams(delta float64) device.Params {
	return device.Params{
		Seed:     e.cfg.RandomSeed,
		Throttle: float32(e.cfg.Throttle),
		Delta:    float32(delta),
	}
}

// reset rebuilds the grid, reallocating buffers and mesh only when the grid
// dimensions changed, and returns the stepper to Uninitialized. The kernel
// is compiled once and kept across resets.
func (e *Effect) reset() error {
	grid := core.NewGrid(e.cfg.EntityCount)
	if e.kernel == nil {
		k, err := e.dev.Compile(e.prog)
		if err != nil {
			return fmt.Errorf("compiling %s kernel: %w", e.prog.Name, err)
		}
		e.kernel = k
	}
	if !e.pair.Allocated() || grid != e.grid {
		if err := e.pair.Allocate(e.dev, grid.W, grid.H); err != nil {
			return err
		}
	}
	if e.mesh == nil || e.mesh.Grid != grid {
		e.mesh = NewIndexMesh(grid)
	}
	e.grid = grid
	e.stepper.Bind(&e.pair, e.kernel)
	e.pendingReset = false
	return nil
}

// Dispose releases the mesh, both state buffers, the kernel and the shading
// collaborators. Further calls do nothing. The device itself belongs to the
// caller.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.stepper.Bind(nil, nil)
	e.mesh = nil
	e.pair.Release()
	if e.kernel != nil {
		e.kernel.Release()
		e.kernel = nil
	}
	if e.lines != nil {
		e.lines.Release()
		e.lines = nil
	}
	if e.debug != nil {
		e.debug.Release()
		e.debug = nil
	}
}

// Disposed reports whether Dispose has run.
func (e *Effect) Disposed() bool { return e.disposed }

// Grid returns the addressing grid of the last reset.
func (e *Effect) Grid() core.Grid { return e.grid }

// Mesh returns the line mesh, or nil before the first Advance.
func (e *Effect) Mesh() *IndexMesh { return e.mesh }

// Current returns the texture holding the last committed state.
func (e *Effect) Current() device.Texture { return e.stepper.Current() }

// State reports the stepper state.
func (e *Effect) State() State { return e.stepper.State() }

// Ticks counts completed Advance calls.
func (e *Effect) Ticks() uint64 { return e.ticks }

// DeviceName reports the name of the device running the kernel.
func (e *Effect) DeviceName() string { return e.dev.Name() }
