//go:build opencl

package device

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"burst/internal/core"

	"github.com/jgillich/go-opencl/cl"
)

const texelBytes = core.Channels * int(unsafe.Sizeof(float32(0)))

// OpenCL stores textures as float4 buffers on an OpenCL device and runs the
// program's OpenCL source. All work goes through one in-order command queue,
// so a step always observes the previous dispatch's writes.
type OpenCL struct {
	context *cl.Context
	queue   *cl.CommandQueue
	device  *cl.Device
	name    string
}

// NewOpenCL opens the first GPU device, falling back to the first CPU device.
func NewOpenCL() (*OpenCL, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	device := firstDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = firstDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	return &OpenCL{context: context, queue: queue, device: device, name: device.Name()}, nil
}

func firstDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// Name reports the OpenCL device name.
func (d *OpenCL) Name() string { return "opencl (" + d.name + ")" }

// NewTexture allocates a zero-filled float4 buffer of w*h texels.
func (d *OpenCL) NewTexture(w, h int) (Texture, error) {
	if d.context == nil {
		return nil, ErrReleased
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("allocating %dx%d texture: %w", w, h, ErrSizeMismatch)
	}
	buf, err := d.context.CreateEmptyBuffer(cl.MemReadWrite, w*h*texelBytes)
	if err != nil {
		return nil, fmt.Errorf("allocating %dx%d state buffer: %w", w, h, err)
	}
	zeros := make([]float32, w*h*core.Channels)
	if _, err := d.queue.EnqueueWriteBufferFloat32(buf, true, 0, zeros, nil); err != nil {
		buf.Release()
		return nil, fmt.Errorf("clearing state buffer: %w", err)
	}
	return &clTexture{dev: d, buf: buf, w: w, h: h}, nil
}

// Compile builds the program's OpenCL source.
func (d *OpenCL) Compile(prog Program) (Kernel, error) {
	if d.context == nil {
		return nil, ErrReleased
	}
	if prog.OpenCL == "" {
		return nil, fmt.Errorf("compiling %q: program has no OpenCL source", prog.Name)
	}
	program, err := d.context.CreateProgramWithSource([]string{prog.OpenCL})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{d.device}, ""); err != nil {
		program.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program %q: %s", prog.Name, string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program %q: %w", prog.Name, err)
	}
	seed, err := program.CreateKernel(SeedEntry)
	if err != nil {
		program.Release()
		return nil, fmt.Errorf("creating %s kernel: %w", SeedEntry, err)
	}
	step, err := program.CreateKernel(StepEntry)
	if err != nil {
		seed.Release()
		program.Release()
		return nil, fmt.Errorf("creating %s kernel: %w", StepEntry, err)
	}
	return &clKernel{dev: d, name: prog.Name, program: program, seed: seed, step: step}, nil
}

// Close releases the queue and context.
func (d *OpenCL) Close() {
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.context != nil {
		d.context.Release()
		d.context = nil
	}
}

type clTexture struct {
	dev  *OpenCL
	buf  *cl.MemObject
	w, h int
}

func (t *clTexture) Size() (int, int) { return t.w, t.h }

func (t *clTexture) Read(dst []float32) error {
	if t.buf == nil || t.dev.queue == nil {
		return ErrReleased
	}
	n := t.w * t.h * core.Channels
	if len(dst) < n {
		return fmt.Errorf("reading %dx%d texture into %d floats: %w", t.w, t.h, len(dst), ErrSizeMismatch)
	}
	if _, err := t.dev.queue.EnqueueReadBufferFloat32(t.buf, true, 0, dst[:n], nil); err != nil {
		return fmt.Errorf("reading state buffer: %w", err)
	}
	return nil
}

func (t *clTexture) Release() {
	if t.buf != nil {
		t.buf.Release()
		t.buf = nil
	}
}

type clKernel struct {
	dev     *OpenCL
	name    string
	program *cl.Program
	seed    *cl.Kernel
	step    *cl.Kernel
}

func (k *clKernel) texture(tex Texture) (*clTexture, error) {
	if k.program == nil {
		return nil, ErrReleased
	}
	t, ok := tex.(*clTexture)
	if !ok || t.dev != k.dev {
		return nil, ErrForeignTexture
	}
	if t.buf == nil {
		return nil, ErrReleased
	}
	return t, nil
}

func (k *clKernel) Seed(dst Texture, p Params) error {
	out, err := k.texture(dst)
	if err != nil {
		return fmt.Errorf("seeding %s: %w", k.name, err)
	}
	if err := k.seed.SetArgs(int32(out.w), int32(out.h), int32(p.Seed), p.Throttle, p.Delta, out.buf); err != nil {
		return fmt.Errorf("setting %s arguments: %w", SeedEntry, err)
	}
	if _, err := k.dev.queue.EnqueueNDRangeKernel(k.seed, nil, []int{out.w * out.h}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing %s: %w", SeedEntry, err)
	}
	return nil
}

func (k *clKernel) Step(src, dst Texture, p Params) error {
	in, err := k.texture(src)
	if err != nil {
		return fmt.Errorf("stepping %s: %w", k.name, err)
	}
	out, err := k.texture(dst)
	if err != nil {
		return fmt.Errorf("stepping %s: %w", k.name, err)
	}
	if in == out {
		return ErrSameTexture
	}
	if in.w != out.w || in.h != out.h {
		return fmt.Errorf("stepping %s: src %dx%d, dst %dx%d: %w", k.name, in.w, in.h, out.w, out.h, ErrSizeMismatch)
	}
	if err := k.step.SetArgs(int32(out.w), int32(out.h), int32(p.Seed), p.Throttle, p.Delta, in.buf, out.buf); err != nil {
		return fmt.Errorf("setting %s arguments: %w", StepEntry, err)
	}
	if _, err := k.dev.queue.EnqueueNDRangeKernel(k.step, nil, []int{out.w * out.h}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing %s: %w", StepEntry, err)
	}
	return nil
}

func (k *clKernel) Release() {
	if k.seed != nil {
		k.seed.Release()
		k.seed = nil
	}
	if k.step != nil {
		k.step.Release()
		k.step = nil
	}
	if k.program != nil {
		k.program.Release()
		k.program = nil
	}
}

func init() {
	Register("opencl", func(Options) (Device, error) {
		return NewOpenCL()
	})
}
