package device

import (
	"fmt"
	"runtime"

	"burst/internal/core"

	"golang.org/x/sync/errgroup"
)

// CPU runs kernels on host goroutines, one band of rows per worker. Each
// dispatch returns only after every row has been written.
type CPU struct {
	workers int
}

// NewCPU constructs a CPU device with the given worker bound.
func NewCPU(workers int) *CPU {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPU{workers: workers}
}

// Name reports the backend and its parallelism.
func (d *CPU) Name() string { return fmt.Sprintf("cpu (%d workers)", d.workers) }

// Workers reports the dispatch parallelism.
func (d *CPU) Workers() int { return d.workers }

// NewTexture allocates a zeroed state grid.
func (d *CPU) NewTexture(w, h int) (Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("allocating %dx%d texture: %w", w, h, ErrSizeMismatch)
	}
	return &cpuTexture{dev: d, grid: core.NewStateGrid(w, h)}, nil
}

// Compile binds the Go rendition of the program.
func (d *CPU) Compile(prog Program) (Kernel, error) {
	if prog.Seed == nil || prog.Step == nil {
		return nil, fmt.Errorf("compiling %q: program has no Go rendition", prog.Name)
	}
	return &cpuKernel{dev: d, prog: prog}, nil
}

// Close is a no-op; CPU workers only live for the duration of a dispatch.
func (d *CPU) Close() {}

// dispatch runs fn over rows [0, h) split into contiguous bands.
func (d *CPU) dispatch(h int, fn func(y int)) error {
	workers := d.workers
	if workers > h {
		workers = h
	}
	band := (h + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < h; start += band {
		end := min(start+band, h)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	return g.Wait()
}

type cpuTexture struct {
	dev  *CPU
	grid *core.StateGrid
}

func (t *cpuTexture) Size() (int, int) {
	if t.grid == nil {
		return 0, 0
	}
	return t.grid.W, t.grid.H
}

func (t *cpuTexture) Read(dst []float32) error {
	if t.grid == nil {
		return ErrReleased
	}
	if len(dst) < len(t.grid.Data()) {
		return fmt.Errorf("reading %dx%d texture into %d floats: %w", t.grid.W, t.grid.H, len(dst), ErrSizeMismatch)
	}
	copy(dst, t.grid.Data())
	return nil
}

func (t *cpuTexture) Release() { t.grid = nil }

type cpuKernel struct {
	dev  *CPU
	prog Program
}

func (k *cpuKernel) texture(tex Texture) (*core.StateGrid, error) {
	if k.dev == nil {
		return nil, ErrReleased
	}
	t, ok := tex.(*cpuTexture)
	if !ok || t.dev != k.dev {
		return nil, ErrForeignTexture
	}
	if t.grid == nil {
		return nil, ErrReleased
	}
	return t.grid, nil
}

func (k *cpuKernel) Seed(dst Texture, p Params) error {
	out, err := k.texture(dst)
	if err != nil {
		return fmt.Errorf("seeding %s: %w", k.prog.Name, err)
	}
	w, h := out.W, out.H
	seed := k.prog.Seed
	return k.dev.dispatch(h, func(y int) {
		for x := 0; x < w; x++ {
			out.Store(x, y, seed(p, x, y, w, h))
		}
	})
}

func (k *cpuKernel) Step(src, dst Texture, p Params) error {
	in, err := k.texture(src)
	if err != nil {
		return fmt.Errorf("stepping %s: %w", k.prog.Name, err)
	}
	out, err := k.texture(dst)
	if err != nil {
		return fmt.Errorf("stepping %s: %w", k.prog.Name, err)
	}
	if in == out {
		return ErrSameTexture
	}
	if in.W != out.W || in.H != out.H {
		return fmt.Errorf("stepping %s: src %dx%d, dst %dx%d: %w", k.prog.Name, in.W, in.H, out.W, out.H, ErrSizeMismatch)
	}
	w, h := out.W, out.H
	step := k.prog.Step
	return k.dev.dispatch(h, func(y int) {
		for x := 0; x < w; x++ {
			out.Store(x, y, step(p, in, x, y, w, h))
		}
	})
}

func (k *cpuKernel) Release() { k.dev = nil }

func init() {
	Register("cpu", func(opts Options) (Device, error) {
		return NewCPU(opts.Workers), nil
	})
}
