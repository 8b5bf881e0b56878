package main

import (
	"fmt"

	"burst/internal/core"
	"burst/internal/device"
	"burst/internal/render"

	"github.com/gdamore/tcell/v2"
)

// stateView keeps the latest readback of the committed state buffer. It is
// the effect's diagnostic blitter.
type stateView struct {
	texels []float32
	w, h   int
}

func (v *stateView) Blit(src device.Texture) error {
	w, h := src.Size()
	if need := w * h * core.Channels; len(v.texels) != need {
		v.texels = make([]float32, need)
	}
	if err := src.Read(v.texels); err != nil {
		return fmt.Errorf("reading state: %w", err)
	}
	v.w, v.h = w, h
	return nil
}

func (v *stateView) Release() {
	v.texels = nil
	v.w, v.h = 0, 0
}

// texel returns the state under terminal cell (cx, cy) of a cols*rows area
// stretched over the whole buffer.
func (v *stateView) texel(cx, cy, cols, rows int) (core.Texel, bool) {
	if v.w == 0 || v.h == 0 || cols <= 0 || rows <= 0 {
		return core.Texel{}, false
	}
	x, y := cellToTexel(cx, cy, cols, rows, v.w, v.h)
	var t core.Texel
	base := (y*v.w + x) * core.Channels
	copy(t[:], v.texels[base:base+core.Channels])
	return t, true
}

// cellToTexel maps a terminal cell to the texel under its center.
func cellToTexel(cx, cy, cols, rows, w, h int) (int, int) {
	x := (2*cx + 1) * w / (2 * cols)
	y := (2*cy + 1) * h / (2 * rows)
	return min(max(x, 0), w-1), min(max(y, 0), h-1)
}

func cellStyle(t core.Texel) tcell.Style {
	c := render.TexelColor(t)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
