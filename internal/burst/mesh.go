package burst

import "burst/internal/core"

// boundsSize is the edge length of the mesh bounding box. The true extent of
// a beam is only known after shading, so the box is kept far larger than any
// plausible radius to keep culling from dropping segments.
const boundsSize = 1000

// Bounds is an axis-aligned box given by its center and edge lengths.
type Bounds struct {
	Center [3]float32
	Size   [3]float32
}

// Contains reports whether p lies inside the box.
func (b Bounds) Contains(p [3]float32) bool {
	for i := range p {
		half := b.Size[i] / 2
		if p[i] < b.Center[i]-half || p[i] > b.Center[i]+half {
			return false
		}
	}
	return true
}

// IndexMesh is a line list with one zero-length segment per grid cell. Vertex
// pair (2i, 2i+1) belongs to entity i and both vertices carry the texture
// coordinate of that entity's cell. The placeholder x position tells the
// shading stage which end of the segment a vertex is: 0 tail, 1 head.
type IndexMesh struct {
	Grid      core.Grid
	Positions [][3]float32
	UVs       [][2]float32
	Indices   []uint32
	Bounds    Bounds
}

// NewIndexMesh builds the mesh addressing every cell of g.
func NewIndexMesh(g core.Grid) *IndexMesh {
	cells := g.Capacity()
	n := cells * 2
	m := &IndexMesh{
		Grid:      g,
		Positions: make([][3]float32, n),
		UVs:       make([][2]float32, n),
		Indices:   make([]uint32, n),
		Bounds:    Bounds{Size: [3]float32{boundsSize, boundsSize, boundsSize}},
	}
	for i := 0; i < cells; i++ {
		x, y := g.IndexToCoord(i)
		u, v := g.CoordToUV(x, y)
		m.Positions[2*i] = [3]float32{0, 0, 0}
		m.Positions[2*i+1] = [3]float32{1, 0, 0}
		m.UVs[2*i] = [2]float32{u, v}
		m.UVs[2*i+1] = [2]float32{u, v}
	}
	for i := range m.Indices {
		m.Indices[i] = uint32(i)
	}
	return m
}

// Segments is the number of entity segments in the mesh.
func (m *IndexMesh) Segments() int { return len(m.Positions) / 2 }
