package render

import (
	"math"

	"burst/internal/beam"
	"burst/internal/burst"
	"burst/internal/core"
)

// Segment is one shaded beam in screen space.
type Segment struct {
	X0, Y0    float32
	X1, Y1    float32
	Depth     float32
	Intensity float32
}

// farFade is the brightness of a segment at the far edge of the burst.
const farFade = 0.4

// DepthFade dims a segment by its depth in world units: full brightness at
// the near edge of a burst of the given radius, farFade at the far edge.
func DepthFade(depth, radius float32) float32 {
	if radius <= 0 {
		return 1
	}
	t := clamp01((depth/radius + 1) / 2)
	return 1 - (1-farFade)*t
}

// Project maps a world position to screen coordinates: a rotation by the
// transform's yaw about the vertical axis, then scale and translation. Depth
// grows away from the viewer.
func Project(pos [3]float32, tr burst.Transform) (x, y, depth float32) {
	sin, cos := math.Sincos(tr.Yaw)
	px, py, pz := float64(pos[0]), float64(pos[1]), float64(pos[2])
	rx := px*cos - pz*sin
	rz := px*sin + pz*cos
	return float32(tr.X + rx*tr.Scale), float32(tr.Y - py*tr.Scale), float32(rz)
}

// Segments shades every vertex pair of mesh against the state texels and
// appends the projected segments to dst. texels is the row-major readback of
// the buffer the mesh addresses; each pair samples it once at its texture
// coordinate with point filtering and repeat addressing.
func Segments(dst []Segment, mesh *burst.IndexMesh, texels []float32, p burst.LineParams) []Segment {
	g := mesh.Grid
	if len(texels) < g.Capacity()*core.Channels {
		return dst
	}
	for i := 0; i < mesh.Segments(); i++ {
		uv := mesh.UVs[2*i]
		t := core.SampleTexels(texels, g.W, g.H, uv[0], uv[1])
		a, fade := beam.Endpoint(t, mesh.Positions[2*i][0], p.Radius)
		b, _ := beam.Endpoint(t, mesh.Positions[2*i+1][0], p.Radius)
		x0, y0, d0 := Project(a, p.Transform)
		x1, y1, d1 := Project(b, p.Transform)
		dst = append(dst, Segment{
			X0: x0, Y0: y0,
			X1: x1, Y1: y1,
			Depth:     (d0 + d1) / 2,
			Intensity: fade,
		})
	}
	return dst
}
