//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"burst/internal/core"
	"burst/internal/device"
	"burst/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

// Debug blit destination, in screen pixels.
const (
	OverlayWidth  = 256
	OverlayHeight = 64
)

// StateOverlay shows the raw texels of a state buffer stretched into a fixed
// rectangle in the top-left corner of the screen.
type StateOverlay struct {
	img    *ebiten.Image
	border *ebiten.Image
	texels []float32
	buf    []byte
	w, h   int
	ready  bool
	mode   render.ColorMode
}

// NewStateOverlay constructs an empty overlay. Its image is sized on the
// first blit.
func NewStateOverlay() *StateOverlay { return &StateOverlay{} }

// Blit uploads the texels of src into the overlay image.
func (o *StateOverlay) Blit(src device.Texture) error {
	w, h := src.Size()
	if o.img == nil || o.w != w || o.h != h {
		if o.img != nil {
			o.img.Deallocate()
		}
		o.img = ebiten.NewImage(w, h)
		o.texels = make([]float32, w*h*core.Channels)
		o.buf = make([]byte, w*h*4)
		o.w, o.h = w, h
	}
	if err := src.Read(o.texels); err != nil {
		return fmt.Errorf("reading overlay state: %w", err)
	}
	render.FillRGBA(o.buf, o.texels, o.mode)
	o.img.WritePixels(o.buf)
	o.ready = true
	return nil
}

// CycleMode switches to the next coloring of the texels and returns it. It
// takes effect on the next blit.
func (o *StateOverlay) CycleMode() render.ColorMode {
	o.mode = o.mode.Next()
	return o.mode
}

// Hide drops the last blit so Draw paints nothing until the next one.
func (o *StateOverlay) Hide() { o.ready = false }

// Draw paints the last blit onto screen.
func (o *StateOverlay) Draw(screen *ebiten.Image) {
	if !o.ready || o.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(OverlayWidth)/float64(o.w), float64(OverlayHeight)/float64(o.h))
	screen.DrawImage(o.img, op)
	if o.border == nil {
		o.border = ebiten.NewImage(OverlayWidth, 1)
		o.border.Fill(color.RGBA{R: 90, G: 90, B: 100, A: 255})
	}
	bop := &ebiten.DrawImageOptions{}
	bop.GeoM.Translate(0, OverlayHeight)
	screen.DrawImage(o.border, bop)
}

// Release frees the overlay image. It is safe to call more than once.
func (o *StateOverlay) Release() {
	if o.img != nil {
		o.img.Deallocate()
		o.img = nil
	}
	if o.border != nil {
		o.border.Deallocate()
		o.border = nil
	}
	o.ready = false
}
