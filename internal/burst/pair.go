package burst

import (
	"fmt"

	"burst/internal/device"
)

// Pair is the ping-pong pair of state textures. One index marks the write
// role; the other texture is the read role. Swap flips the index and never
// copies texels.
type Pair struct {
	tex   [2]device.Texture
	write int
	w, h  int
}

// Allocate releases any previous textures and creates two w*h textures. The
// second texture starts in the write role. On failure nothing stays
// allocated.
func (p *Pair) Allocate(dev device.Device, w, h int) error {
	p.Release()
	a, err := dev.NewTexture(w, h)
	if err != nil {
		return fmt.Errorf("allocating state buffer A: %w", err)
	}
	b, err := dev.NewTexture(w, h)
	if err != nil {
		a.Release()
		return fmt.Errorf("allocating state buffer B: %w", err)
	}
	p.tex = [2]device.Texture{a, b}
	p.write = 1
	p.w, p.h = w, h
	return nil
}

// Release frees both textures. Releasing an unallocated pair is a no-op.
func (p *Pair) Release() {
	for i, t := range p.tex {
		if t != nil {
			t.Release()
			p.tex[i] = nil
		}
	}
	p.w, p.h = 0, 0
}

// Allocated reports whether both textures exist.
func (p *Pair) Allocated() bool { return p.tex[0] != nil && p.tex[1] != nil }

// Size reports the texture dimensions, or zeros when unallocated.
func (p *Pair) Size() (int, int) { return p.w, p.h }

// Swap exchanges the read and write roles.
func (p *Pair) Swap() { p.write ^= 1 }

// Read returns the texture in the read role.
func (p *Pair) Read() device.Texture { return p.tex[p.write^1] }

// Write returns the texture in the write role.
func (p *Pair) Write() device.Texture { return p.tex[p.write] }
