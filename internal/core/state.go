package core

// Channels is the number of float components stored per texel.
const Channels = 4

// Texel is one cell of state: four opaque float channels.
type Texel [Channels]float32

// StateGrid stores a 2D grid of 4-channel float texels in row-major order.
type StateGrid struct {
	Grid
	data []float32
}

// NewStateGrid allocates a zeroed state grid with the given dimensions.
func NewStateGrid(w, h int) *StateGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &StateGrid{Grid: Grid{W: w, H: h}, data: make([]float32, w*h*Channels)}
}

// Data exposes the backing slice, Channels floats per texel.
func (g *StateGrid) Data() []float32 { return g.data }

// Fetch reads the texel at (x, y) with repeat addressing.
func (g *StateGrid) Fetch(x, y int) Texel {
	x, y = g.Wrap(x, y)
	base := g.Index(x, y) * Channels
	var t Texel
	copy(t[:], g.data[base:base+Channels])
	return t
}

// Store writes the texel at (x, y). Coordinates must be in range.
func (g *StateGrid) Store(x, y int, t Texel) {
	base := g.Index(x, y) * Channels
	copy(g.data[base:base+Channels], t[:])
}

// SampleTexels returns the texel of a row-major w*h texel slice nearest to
// (u, v), using point filtering and repeat addressing.
func SampleTexels(data []float32, w, h int, u, v float32) Texel {
	g := Grid{W: w, H: h}
	x, y := g.UVToCoord(u, v)
	base := g.Index(x, y) * Channels
	var t Texel
	copy(t[:], data[base:base+Channels])
	return t
}
