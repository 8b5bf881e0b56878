//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"burst/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Controller is what the HUD reads and adjusts.
type Controller interface {
	Parameters() core.ParameterSnapshot
	ParameterControls() []core.ParameterControl
	core.IntParameterSetter
	core.FloatParameterSetter
}

// HUD renders the parameter panel along the right edge of the screen.
type HUD struct {
	ctrl     Controller
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot
	controls []controlState
	offsetX  int
	hidden   bool
}

// NewHUD constructs a HUD of the given panel width for ctrl.
func NewHUD(ctrl Controller, width int) *HUD {
	h := &HUD{ctrl: ctrl, width: max(width, 0)}
	h.controls = newControlStates(ctrl.ParameterControls())
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() { h.hidden = !h.hidden }

// Update refreshes the cached snapshot and handles clicks on the panel
// buttons. screenWidth positions the panel.
func (h *HUD) Update(screenWidth int) {
	if h == nil || h.hidden {
		return
	}
	h.offsetX = screenWidth - h.width
	h.snapshot = h.ctrl.Parameters()
	refresh(h.controls, h.snapshot)
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	if px < 0 {
		return
	}
	for i := range h.controls {
		minus, plus := h.buttons(i)
		pt := image.Pt(px, my)
		switch {
		case pt.In(minus):
			apply(&h.controls[i], -1, h.ctrl, h.ctrl)
			return
		case pt.In(plus):
			apply(&h.controls[i], 1, h.ctrl, h.ctrl)
			return
		}
	}
}

// Draw paints the panel.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.hidden || h.width <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 220})
	h.drawControls()
	h.drawStatus()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(h.offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Burst", face, panelPadding, panelPadding+headerBaseline, labelColor)
	for i := range h.controls {
		s := &h.controls[i]
		top := controlsTop + i*lineHeight
		text.Draw(h.panel, s.control.Label, face, panelPadding, top+labelBaseline, valueColor)

		minus, plus := h.buttons(i)
		col := valueColor
		if !s.hasValue {
			col = mutedColor
		}
		w := text.BoundString(face, s.value).Dx()
		text.Draw(h.panel, s.value, face, minus.Min.X-buttonGap-w, top+labelBaseline, col)

		_, canDown := adjustTarget(s, -1)
		_, canUp := adjustTarget(s, 1)
		h.drawButton(minus, "-", canDown)
		h.drawButton(plus, "+", canUp)
	}
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := controlsTop + len(h.controls)*lineHeight + statusGap
	for _, group := range h.snapshot.Groups {
		if group.Name != "Status" {
			continue
		}
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding, y, mutedColor)
			y += statusLine
		}
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// buttons returns the minus and plus rectangles of control i in panel
// coordinates.
func (h *HUD) buttons(i int) (minus, plus image.Rectangle) {
	top := controlsTop + i*lineHeight
	y := top + (lineHeight-buttonSize)/2
	plus = image.Rect(h.width-panelPadding-buttonSize, y, h.width-panelPadding, y+buttonSize)
	minus = image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
	return minus, plus
}

// Release frees the panel images.
func (h *HUD) Release() {
	if h == nil {
		return
	}
	if h.panel != nil {
		h.panel.Deallocate()
		h.panel = nil
	}
	if h.pixel != nil {
		h.pixel.Deallocate()
		h.pixel = nil
	}
}

var (
	labelColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	valueColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	// PanelWidth is the default HUD width in pixels.
	PanelWidth = 240

	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 13
	labelBaseline  = 22
	controlsTop    = panelPadding + 28
	statusGap      = 16
	statusLine     = 18
)
