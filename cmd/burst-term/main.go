package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"burst/internal/beam"
	"burst/internal/burst"
	"burst/internal/core"
	"burst/internal/device"

	"github.com/gdamore/tcell/v2"
)

type viewer struct {
	screen tcell.Screen
	effect *burst.Effect
	view   *stateView
	clock  *core.FrameClock
	rng    *core.RNG
	live   bool
}

// initScreen initializes screen and releases the terminal again when that fails.
func initScreen(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		screen.Fini()
		return err
	}
	return nil
}

func newViewer(screen tcell.Screen, dev device.Device, cfg burst.Config) (*viewer, error) {
	if err := initScreen(screen); err != nil {
		return nil, err
	}
	cfg.DebugOverlay = true
	view := &stateView{}
	return &viewer{
		screen: screen,
		effect: burst.New(dev, beam.Program(), cfg, burst.WithDebug(view)),
		view:   view,
		clock:  core.NewFrameClock(),
		rng:    core.NewRNG(time.Now().UnixNano()),
		live:   true,
	}, nil
}

// handleKey reports false when the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			v.effect.SetIntParameter("seed", v.rng.Seed())
		case 'p':
			v.live = !v.live
			v.clock.Reset()
		}
	}
	return true
}

func (v *viewer) frame() error {
	delta := v.clock.Tick()
	if !v.live {
		delta = core.PreviewDelta
	}
	if err := v.effect.Advance(delta, v.live); err != nil {
		return err
	}
	v.draw()
	return nil
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	rows-- // status line
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			t, ok := v.view.texel(cx, cy, cols, rows)
			if !ok {
				continue
			}
			v.screen.SetContent(cx, cy, '█', nil, cellStyle(t))
		}
	}
	mode := "live"
	if !v.live {
		mode = "preview"
	}
	cfg := v.effect.Config()
	g := v.effect.Grid()
	status := fmt.Sprintf(" %s | grid %dx%d | seed %d | %s | tick %d | q quit, r reseed, p preview",
		v.effect.DeviceName(), g.W, g.H, cfg.RandomSeed, mode, v.effect.Ticks())
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func (v *viewer) run(fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(v.screen.PollEvent, events, done)

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			if err := v.frame(); err != nil {
				return err
			}
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (v *viewer) close() {
	v.effect.Dispose()
	v.screen.Fini()
}

func main() {
	cfg := burst.DefaultConfig()
	cfg.EntityCount = 4096
	flag.IntVar(&cfg.EntityCount, "entities", cfg.EntityCount, "number of beams")
	flag.IntVar(&cfg.RandomSeed, "seed", cfg.RandomSeed, "seed for the beam distribution")
	flag.Float64Var(&cfg.Throttle, "throttle", cfg.Throttle, "simulation speed multiplier")
	fps := flag.Int("fps", 30, "frames per second")
	workers := flag.Int("workers", 0, "CPU device workers, 0 for one per core")
	flag.Parse()
	if cfg.EntityCount <= 0 || *fps <= 0 {
		log.Fatalf("entities and fps must be positive")
	}

	if err := run(cfg, *fps, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "burst-term: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg burst.Config, fps, workers int) error {
	dev, err := device.Open("cpu", device.Options{Workers: workers})
	if err != nil {
		return err
	}
	defer dev.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	v, err := newViewer(screen, dev, cfg)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer v.close()
	return v.run(fps)
}
