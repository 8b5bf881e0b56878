//go:build ebiten

package main

import (
	"flag"
	"log"

	"burst/internal/app"
	"burst/internal/core"
	"burst/internal/device"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

// run opens the device and drives the game until the window closes. The
// game and device are released before it returns.
func run(cfg *app.Config) error {
	dev, err := device.Open(cfg.Device, device.Options{Workers: cfg.Workers})
	if err != nil {
		return err
	}
	defer dev.Close()

	grid := core.NewGrid(cfg.Burst.EntityCount)
	log.Printf("device %s, grid %dx%d", dev.Name(), grid.W, grid.H)
	if grid.Aliased(cfg.Burst.EntityCount) {
		log.Printf("%d beams exceed the grid capacity of %d; extra beams share state", cfg.Burst.EntityCount, grid.Capacity())
	}

	game := app.New(dev, cfg)
	defer game.Close()

	ebiten.SetWindowTitle("burst - " + dev.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	return exitError(ebiten.RunGame(game), ebiten.Termination)
}
