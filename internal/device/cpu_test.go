package device

import (
	"errors"
	"slices"
	"testing"

	"burst/internal/core"
)

// counterProgram seeds each cell with its address and increments channel 3
// from the left neighbor, which exercises wrap-around reads.
var counterProgram = Program{
	Name: "counter",
	Seed: func(p Params, x, y, w, h int) core.Texel {
		return core.Texel{float32(x), float32(y), float32(p.Seed), 0}
	},
	Step: func(p Params, prev Sampler, x, y, w, h int) core.Texel {
		self := prev.Fetch(x, y)
		left := prev.Fetch(x-1, y)
		self[3] = left[3] + p.Delta*p.Throttle
		return self
	},
}

func TestCPUSeedAndStep(t *testing.T) {
	dev := NewCPU(3)
	a, err := dev.NewTexture(5, 4)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	b, err := dev.NewTexture(5, 4)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	k, err := dev.Compile(counterProgram)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	p := Params{Seed: 9, Throttle: 2, Delta: 0.5}
	if err := k.Seed(a, p); err != nil {
		t.Fatalf("seed: %v", err)
	}
	buf := make([]float32, 5*4*core.Channels)
	if err := a.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			base := (y*5 + x) * core.Channels
			want := []float32{float32(x), float32(y), 9, 0}
			if !slices.Equal(buf[base:base+core.Channels], want) {
				t.Fatalf("seeded texel (%d,%d) = %v, expected %v", x, y, buf[base:base+core.Channels], want)
			}
		}
	}

	if err := k.Step(a, b, p); err != nil {
		t.Fatalf("step: %v", err)
	}
	if err := k.Step(b, a, p); err != nil {
		t.Fatalf("step: %v", err)
	}
	if err := a.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := 0; i < 5*4; i++ {
		if got := buf[i*core.Channels+3]; got != 2 {
			t.Fatalf("texel %d channel 3 = %f after two steps, expected 2", i, got)
		}
	}
}

func TestCPUStepRejectsAliasedAndMismatched(t *testing.T) {
	dev := NewCPU(2)
	a, _ := dev.NewTexture(4, 2)
	b, _ := dev.NewTexture(4, 3)
	k, _ := dev.Compile(counterProgram)

	if err := k.Step(a, a, Params{}); !errors.Is(err, ErrSameTexture) {
		t.Fatalf("expected ErrSameTexture, got %v", err)
	}
	if err := k.Step(a, b, Params{}); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}

	other := NewCPU(1)
	c, _ := other.NewTexture(4, 2)
	if err := k.Step(a, c, Params{}); !errors.Is(err, ErrForeignTexture) {
		t.Fatalf("expected ErrForeignTexture, got %v", err)
	}
}

func TestCPUReleaseIsIdempotent(t *testing.T) {
	dev := NewCPU(1)
	tex, _ := dev.NewTexture(2, 2)
	k, _ := dev.Compile(counterProgram)

	tex.Release()
	tex.Release()
	if err := tex.Read(make([]float32, 16)); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased on read, got %v", err)
	}
	if err := k.Seed(tex, Params{}); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased on seed, got %v", err)
	}

	k.Release()
	k.Release()
	fresh, _ := dev.NewTexture(2, 2)
	if err := k.Seed(fresh, Params{}); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased from released kernel, got %v", err)
	}
	dev.Close()
}

func TestCPUCompileRequiresGoRendition(t *testing.T) {
	if _, err := NewCPU(1).Compile(Program{Name: "cl-only", OpenCL: "__kernel void x() {}"}); err == nil {
		t.Fatal("expected compile error for program without Go functions")
	}
}

func TestCPUDispatchCoversEveryRow(t *testing.T) {
	for _, workers := range []int{1, 2, 7, 64} {
		dev := NewCPU(workers)
		rows := make([]int, 13)
		if err := dev.dispatch(len(rows), func(y int) { rows[y]++ }); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for y, n := range rows {
			if n != 1 {
				t.Fatalf("workers=%d: row %d visited %d times", workers, y, n)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if !slices.Contains(names, "cpu") || !slices.Contains(names, "opencl") {
		t.Fatalf("expected cpu and opencl to be registered, got %v", names)
	}
	dev, err := Open("cpu", Options{Workers: 2})
	if err != nil {
		t.Fatalf("open cpu: %v", err)
	}
	if dev.Name() != "cpu (2 workers)" {
		t.Fatalf("unexpected name %q", dev.Name())
	}
	if _, err := Open("vulkan", Options{}); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("expected ErrUnknownDevice, got %v", err)
	}
}
