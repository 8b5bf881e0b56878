package burst

import (
	"errors"

	"burst/internal/core"
	"burst/internal/device"
)

var errFakeAlloc = errors.New("fake: out of memory")

type call struct {
	op       string
	src, dst int
}

// fakeDevice stands in for a compute device: textures are numbered handles
// and every kernel dispatch is recorded.
type fakeDevice struct {
	textures   []*fakeTexture
	kernels    []*fakeKernel
	calls      []call
	failAllocs map[int]bool
	failStep   bool
	doubleFree int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{failAllocs: map[int]bool{}}
}

func (d *fakeDevice) Name() string { return "fake" }

func (d *fakeDevice) NewTexture(w, h int) (device.Texture, error) {
	if d.failAllocs[len(d.textures)] {
		d.failAllocs[len(d.textures)] = false
		d.textures = append(d.textures, nil)
		return nil, errFakeAlloc
	}
	t := &fakeTexture{dev: d, id: len(d.textures), w: w, h: h}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) Compile(prog device.Program) (device.Kernel, error) {
	k := &fakeKernel{dev: d}
	d.kernels = append(d.kernels, k)
	return k, nil
}

func (d *fakeDevice) Close() {}

func (d *fakeDevice) live() int {
	n := 0
	for _, t := range d.textures {
		if t != nil && t.releases == 0 {
			n++
		}
	}
	return n
}

type fakeTexture struct {
	dev      *fakeDevice
	id       int
	w, h     int
	releases int
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

func (t *fakeTexture) Read(dst []float32) error {
	if t.releases > 0 {
		return device.ErrReleased
	}
	for i := range dst[:t.w*t.h*core.Channels] {
		dst[i] = float32(t.id)
	}
	return nil
}

func (t *fakeTexture) Release() {
	t.releases++
	if t.releases > 1 {
		t.dev.doubleFree++
	}
}

type fakeKernel struct {
	dev      *fakeDevice
	releases int
}

func id(t device.Texture) int {
	if ft, ok := t.(*fakeTexture); ok {
		return ft.id
	}
	return -1
}

func (k *fakeKernel) Seed(dst device.Texture, p device.Params) error {
	if dst.(*fakeTexture).releases > 0 {
		return device.ErrReleased
	}
	k.dev.calls = append(k.dev.calls, call{op: "seed", src: -1, dst: id(dst)})
	return nil
}

func (k *fakeKernel) Step(src, dst device.Texture, p device.Params) error {
	if k.dev.failStep {
		return errors.New("fake: device lost")
	}
	if src == dst {
		return device.ErrSameTexture
	}
	k.dev.calls = append(k.dev.calls, call{op: "step", src: id(src), dst: id(dst)})
	return nil
}

func (k *fakeKernel) Release() {
	k.releases++
	if k.releases > 1 {
		k.dev.doubleFree++
	}
}

type fakeLines struct {
	drawn    []int
	params   []LineParams
	meshes   []*IndexMesh
	releases int
}

func (l *fakeLines) DrawLines(mesh *IndexMesh, src device.Texture, p LineParams) error {
	l.drawn = append(l.drawn, id(src))
	l.params = append(l.params, p)
	l.meshes = append(l.meshes, mesh)
	return nil
}

func (l *fakeLines) Release() { l.releases++ }

type fakeDebug struct {
	blits    []int
	releases int
}

func (d *fakeDebug) Blit(src device.Texture) error {
	d.blits = append(d.blits, id(src))
	return nil
}

func (d *fakeDebug) Release() { d.releases++ }
