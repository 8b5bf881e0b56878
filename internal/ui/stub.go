//go:build !ebiten

package ui

import (
	"burst/internal/burst"
	"burst/internal/device"
	"burst/internal/render"
)

// PanelWidth is the default HUD width in pixels.
const PanelWidth = 240

// BeamCanvas is a no-op placeholder for headless builds.
type BeamCanvas struct{}

// NewBeamCanvas returns a placeholder canvas in the headless build.
func NewBeamCanvas(int, int, float32) *BeamCanvas { return &BeamCanvas{} }

// DrawLines is a no-op in the headless build.
func (c *BeamCanvas) DrawLines(*burst.IndexMesh, device.Texture, burst.LineParams) error { return nil }

// Draw is a no-op placeholder.
func (c *BeamCanvas) Draw(any) {}

// Release is a no-op in the headless build.
func (c *BeamCanvas) Release() {}

// StateOverlay is a no-op placeholder for headless builds.
type StateOverlay struct{}

// NewStateOverlay constructs a stub overlay.
func NewStateOverlay() *StateOverlay { return &StateOverlay{} }

// Blit is a no-op in the headless build.
func (o *StateOverlay) Blit(device.Texture) error { return nil }

// CycleMode returns the direction coloring in the headless build.
func (o *StateOverlay) CycleMode() render.ColorMode { return render.ColorByDirection }

// Hide is a no-op in the headless build.
func (o *StateOverlay) Hide() {}

// Draw is a no-op placeholder.
func (o *StateOverlay) Draw(any) {}

// Release is a no-op in the headless build.
func (o *StateOverlay) Release() {}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(any, int) *HUD { return nil }

// Toggle is a no-op in the headless build.
func (h *HUD) Toggle() {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op placeholder.
func (h *HUD) Draw(any) {}

// Release is a no-op in the headless build.
func (h *HUD) Release() {}
