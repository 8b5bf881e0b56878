package core

import "math"

const (
	// GridWidth is the fixed texel width of every state grid.
	GridWidth = 256
	// MaxGridHeight caps the grid height so state buffers stay bounded.
	MaxGridHeight = 127
)

// Grid maps linear entity indices onto a 2D texel address space.
type Grid struct {
	W, H int
}

// NewGrid sizes a grid for entityCount entities. The height is
// ceil(entityCount/GridWidth) clamped to [1, MaxGridHeight]; entities beyond
// the resulting capacity alias existing cells.
func NewGrid(entityCount int) Grid {
	h := 1
	if entityCount > 0 {
		h = 1 + (entityCount-1)/GridWidth
	}
	if h > MaxGridHeight {
		h = MaxGridHeight
	}
	return Grid{W: GridWidth, H: h}
}

// Capacity is the number of distinct cells in the grid.
func (g Grid) Capacity() int { return g.W * g.H }

// Aliased reports whether entityCount exceeds the grid capacity.
func (g Grid) Aliased(entityCount int) bool { return entityCount > g.Capacity() }

// IndexToCoord returns the texel coordinate of entity i. Indices past the
// capacity wrap around onto existing cells.
func (g Grid) IndexToCoord(i int) (int, int) {
	if c := g.Capacity(); c > 0 && i >= c {
		i %= c
	}
	return i % g.W, i / g.W
}

// CoordToUV returns the normalized texture coordinate of the center of texel
// (x, y).
func (g Grid) CoordToUV(x, y int) (float32, float32) {
	return (float32(x) + 0.5) / float32(g.W), (float32(y) + 0.5) / float32(g.H)
}

// Index returns the linear slice index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// UVToCoord returns the texel nearest to (u, v) with repeat addressing.
func (g Grid) UVToCoord(u, v float32) (int, int) {
	x := int(math.Floor(float64(u) * float64(g.W)))
	y := int(math.Floor(float64(v) * float64(g.H)))
	return g.Wrap(x, y)
}
