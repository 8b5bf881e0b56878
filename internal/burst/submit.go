package burst

import (
	"fmt"

	"burst/internal/device"
)

// Transform places the burst on the host's canvas: the screen origin of the
// burst center, pixels per world unit and a rotation about the vertical axis
// in radians.
type Transform struct {
	X, Y  float64
	Scale float64
	Yaw   float64
}

// DefaultTransform places the center at the canvas origin with unit scale.
func DefaultTransform() Transform { return Transform{Scale: 1} }

// LineParams is the per-draw parameter bundle of the line renderer.
type LineParams struct {
	Color     Color
	Radius    float32
	Transform Transform
}

// LineRenderer turns each vertex pair of the mesh into a drawn segment by
// sampling src at the pair's texture coordinate.
type LineRenderer interface {
	DrawLines(mesh *IndexMesh, src device.Texture, p LineParams) error
	Release()
}

// DebugBlitter draws the raw texels of a state buffer for inspection.
type DebugBlitter interface {
	Blit(src device.Texture) error
	Release()
}

// submit issues one draw of the mesh reading the texture last committed by
// the stepper, then the diagnostic blit when enabled.
func (e *Effect) submit() error {
	cur := e.stepper.Current()
	if cur == nil {
		return nil
	}
	if e.lines != nil {
		p := LineParams{
			Color:     e.cfg.Color,
			Radius:    float32(e.cfg.Radius),
			Transform: e.transform,
		}
		if err := e.lines.DrawLines(e.mesh, cur, p); err != nil {
			return fmt.Errorf("drawing beams: %w", err)
		}
	}
	if e.cfg.DebugOverlay && e.debug != nil {
		if err := e.debug.Blit(cur); err != nil {
			return fmt.Errorf("drawing state overlay: %w", err)
		}
	}
	return nil
}
