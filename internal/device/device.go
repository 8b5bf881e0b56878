// Package device abstracts the parallel compute surface that holds beam state
// and runs the per-cell update kernel.
//
// A Device hands out Textures (fixed-size grids of 4-channel float texels,
// point sampled, repeat addressed) and compiles a Program into a Kernel. The
// caller owns every handle it receives and must release it exactly once;
// releasing twice is a no-op.
package device

import (
	"errors"

	"burst/internal/core"
)

var (
	// ErrSizeMismatch is returned when a kernel is dispatched between textures
	// of different dimensions.
	ErrSizeMismatch = errors.New("device: texture size mismatch")
	// ErrSameTexture is returned when a step would read and write one texture.
	ErrSameTexture = errors.New("device: step source and destination are the same texture")
	// ErrReleased is returned when a released handle is used.
	ErrReleased = errors.New("device: handle already released")
	// ErrForeignTexture is returned when a texture from another device is used.
	ErrForeignTexture = errors.New("device: texture belongs to another device")
)

// Params is the per-dispatch parameter bundle handed to a kernel.
type Params struct {
	Seed     int
	Throttle float32
	Delta    float32
}

// Sampler reads texels of the previous state with repeat addressing.
type Sampler interface {
	Fetch(x, y int) core.Texel
}

// SeedFunc computes the cold-start state of cell (x, y) of a w*h grid from
// the parameters and the address alone.
type SeedFunc func(p Params, x, y, w, h int) core.Texel

// StepFunc computes the next state of cell (x, y) from the previous state.
type StepFunc func(p Params, prev Sampler, x, y, w, h int) core.Texel

// OpenCL entry points every Program source must define.
const (
	SeedEntry = "seed_cells"
	StepEntry = "step_cells"
)

// Program is the uncompiled form of a kernel. Backends use the rendition they
// can execute: the CPU device calls Seed and Step, the OpenCL device builds
// OpenCL.
type Program struct {
	Name   string
	Seed   SeedFunc
	Step   StepFunc
	OpenCL string
}

// Texture is a device-resident state grid.
type Texture interface {
	Size() (w, h int)
	// Read copies the texels into dst in row-major order, core.Channels
	// floats per texel. dst must hold at least w*h*core.Channels floats.
	Read(dst []float32) error
	Release()
}

// Kernel is a compiled Program.
type Kernel interface {
	// Seed writes the cold-start state into dst without reading any texture.
	Seed(dst Texture, p Params) error
	// Step reads src and writes dst. src and dst must be distinct textures of
	// equal size.
	Step(src, dst Texture, p Params) error
	Release()
}

// Device creates textures and kernels. Work is submitted in program order and
// completes before the next dependent call observes it.
type Device interface {
	Name() string
	NewTexture(w, h int) (Texture, error)
	Compile(prog Program) (Kernel, error)
	Close()
}
