package render

import (
	"image/color"

	"burst/internal/core"
)

// TexelColor visualizes one beam state: the direction channels map from
// [-1, 1] onto RGB and the phase dims the result toward the end of life.
func TexelColor(t core.Texel) color.RGBA {
	fade := 1 - clamp01(t[3])*0.75
	return color.RGBA{
		R: toByte((t[0]*0.5 + 0.5) * fade),
		G: toByte((t[1]*0.5 + 0.5) * fade),
		B: toByte((t[2]*0.5 + 0.5) * fade),
		A: 0xff,
	}
}

// ColorMode selects how the diagnostic view colors state texels.
type ColorMode int

const (
	// ColorByDirection maps the direction channels onto RGB.
	ColorByDirection ColorMode = iota
	// ColorByAge maps the phase channel through AgePalette.
	ColorByAge
	colorModes
)

// Next returns the mode after m, wrapping around.
func (m ColorMode) Next() ColorMode { return (m + 1) % colorModes }

func (m ColorMode) String() string {
	switch m {
	case ColorByDirection:
		return "direction"
	case ColorByAge:
		return "age"
	default:
		return "unknown"
	}
}

// AgePalette runs from freshly spawned beams to beams about to respawn.
var AgePalette = []color.RGBA{
	{R: 255, G: 250, B: 220, A: 255},
	{R: 255, G: 214, B: 120, A: 255},
	{R: 250, G: 150, B: 60, A: 255},
	{R: 210, G: 80, B: 40, A: 255},
	{R: 140, G: 40, B: 50, A: 255},
	{R: 60, G: 20, B: 40, A: 255},
}

// FillRGBA converts row-major state texels into RGBA pixels using mode.
func FillRGBA(buf []byte, texels []float32, mode ColorMode) {
	if mode == ColorByAge {
		FillPaletteRGBA(buf, texels, AgePalette)
		return
	}
	FillStateRGBA(buf, texels)
}

// FillStateRGBA converts row-major state texels into RGBA pixels in buf. buf
// must hold four bytes per texel.
func FillStateRGBA(buf []byte, texels []float32) {
	n := len(texels) / core.Channels
	for i := 0; i < n; i++ {
		var t core.Texel
		copy(t[:], texels[i*core.Channels:(i+1)*core.Channels])
		c := TexelColor(t)
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// FillPaletteRGBA converts the phase channel of each texel into RGBA pixels
// using a palette, oldest beams taking the last entry. When the palette is
// empty the buffer is cleared to transparent black.
func FillPaletteRGBA(buf []byte, texels []float32, palette []color.RGBA) {
	n := len(texels) / core.Channels
	if len(palette) == 0 {
		clear(buf[:n*4])
		return
	}
	last := len(palette) - 1
	for i := 0; i < n; i++ {
		idx := int(clamp01(texels[i*core.Channels+3]) * float32(len(palette)))
		if idx > last {
			idx = last
		}
		col := palette[idx]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func toByte(f float32) uint8 {
	return uint8(clamp01(f)*255 + 0.5)
}
