//go:build ebiten

package app

import (
	"image/color"
	"time"

	"burst/internal/beam"
	"burst/internal/burst"
	"burst/internal/core"
	"burst/internal/device"
	"burst/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the burst effect to the ebiten.Game interface.
type Game struct {
	effect  *burst.Effect
	canvas  *ui.BeamCanvas
	overlay *ui.StateOverlay
	hud     *ui.HUD
	clock   *core.FrameClock
	rng     *core.RNG

	width, height int
	spin          float64
	yaw           float64
	live          bool
	paused        bool
}

// New constructs a Game drawing the burst on dev. The device stays owned by
// the caller.
func New(dev device.Device, cfg *Config) *Game {
	canvas := ui.NewBeamCanvas(cfg.Width, cfg.Height, 1)
	overlay := ui.NewStateOverlay()
	view := max(cfg.Width-ui.PanelWidth, 1)
	tr := burst.Transform{
		X:     float64(view) / 2,
		Y:     float64(cfg.Height) / 2,
		Scale: 0.45 * float64(min(view, cfg.Height)),
	}
	effect := burst.New(dev, beam.Program(), cfg.Burst,
		burst.WithLines(canvas),
		burst.WithDebug(overlay),
		burst.WithTransform(tr),
	)
	return &Game{
		effect:  effect,
		canvas:  canvas,
		overlay: overlay,
		hud:     ui.NewHUD(effect, ui.PanelWidth),
		clock:   core.NewFrameClock(),
		rng:     core.NewRNG(time.Now().UnixNano()),
		width:   cfg.Width,
		height:  cfg.Height,
		spin:    cfg.Spin,
		live:    !cfg.Preview,
	}
}

// Effect exposes the underlying effect.
func (g *Game) Effect() *burst.Effect { return g.effect }

// Update handles per-frame input and advances the effect by one frame.
// Errors from the effect are device failures and end the game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.clock.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.live = !g.live
		g.clock.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		on := !g.effect.Config().DebugOverlay
		g.effect.SetDebugOverlay(on)
		if !on {
			g.overlay.Hide()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.overlay.CycleMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.effect.NotifyConfigChanged()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.effect.SetIntParameter("seed", g.rng.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}
	g.hud.Update(g.width)

	if g.paused {
		return nil
	}
	delta := g.clock.Tick()
	if !g.live {
		delta = core.PreviewDelta
	}
	g.yaw += delta * g.spin
	tr := g.effect.Transform()
	tr.Yaw = g.yaw
	g.effect.SetTransform(tr)
	return g.effect.Advance(delta, g.live)
}

// Draw composites the beams, the optional state overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.canvas.Draw(screen)
	if g.effect.Config().DebugOverlay {
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close disposes the effect and the HUD.
func (g *Game) Close() {
	g.effect.Dispose()
	g.hud.Release()
}
