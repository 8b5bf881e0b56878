//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"burst/internal/burst"
	"burst/internal/core"
	"burst/internal/device"
	"burst/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxQuads keeps every DrawTriangles batch within 16-bit indices.
const maxQuads = (1 << 16) / 4

// BeamCanvas renders the burst's vertex pairs as additive line quads onto an
// offscreen image that the host composites every frame.
type BeamCanvas struct {
	canvas *ebiten.Image
	pixel  *ebiten.Image
	white  *ebiten.Image
	width  float32

	texels   []float32
	segments []render.Segment
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewBeamCanvas allocates a w*h canvas. lineWidth is the drawn segment width
// in pixels.
func NewBeamCanvas(w, h int, lineWidth float32) *BeamCanvas {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	c := &BeamCanvas{
		canvas: ebiten.NewImage(w, h),
		pixel:  ebiten.NewImage(3, 3),
		width:  lineWidth,
	}
	c.pixel.Fill(color.White)
	c.white = c.pixel.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return c
}

// DrawLines clears the canvas and draws one segment per mesh vertex pair,
// shaded from the texels of src and dimmed with depth.
func (c *BeamCanvas) DrawLines(mesh *burst.IndexMesh, src device.Texture, p burst.LineParams) error {
	if c.canvas == nil {
		return fmt.Errorf("beam canvas released")
	}
	w, h := src.Size()
	need := w * h * core.Channels
	if cap(c.texels) < need {
		c.texels = make([]float32, need)
	}
	c.texels = c.texels[:need]
	if err := src.Read(c.texels); err != nil {
		return fmt.Errorf("reading beam state: %w", err)
	}
	c.segments = render.Segments(c.segments[:0], mesh, c.texels, p)

	c.canvas.Clear()
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	for start := 0; start < len(c.segments); start += maxQuads {
		end := min(start+maxQuads, len(c.segments))
		c.buildBatch(c.segments[start:end], p.Color, p.Radius)
		c.canvas.DrawTriangles(c.vertices, c.indices, c.white, op)
	}
	return nil
}

func (c *BeamCanvas) buildBatch(segs []render.Segment, col burst.Color, radius float32) {
	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]
	half := c.width / 2
	for i, s := range segs {
		dx, dy := s.X1-s.X0, s.Y1-s.Y0
		length := float32(math.Hypot(float64(dx), float64(dy)))
		// Degenerate beams still get a pixel-sized quad.
		nx, ny := half, float32(0)
		if length > 1e-6 {
			nx, ny = -dy/length*half, dx/length*half
		}
		k := s.Intensity * render.DepthFade(s.Depth, radius)
		r, g, b, a := col.R*k, col.G*k, col.B*k, col.A
		for _, v := range [4][2]float32{
			{s.X0 + nx, s.Y0 + ny},
			{s.X0 - nx, s.Y0 - ny},
			{s.X1 + nx, s.Y1 + ny},
			{s.X1 - nx, s.Y1 - ny},
		} {
			c.vertices = append(c.vertices, ebiten.Vertex{
				DstX: v[0], DstY: v[1],
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		base := uint16(i * 4)
		c.indices = append(c.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
}

// Draw composites the canvas onto screen.
func (c *BeamCanvas) Draw(screen *ebiten.Image) {
	if c.canvas == nil {
		return
	}
	screen.DrawImage(c.canvas, nil)
}

// Release frees the canvas images. It is safe to call more than once.
func (c *BeamCanvas) Release() {
	if c.canvas == nil {
		return
	}
	c.canvas.Deallocate()
	c.pixel.Deallocate()
	c.canvas, c.pixel, c.white = nil, nil, nil
}
