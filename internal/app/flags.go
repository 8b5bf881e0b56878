package app

import (
	"flag"
	"fmt"

	"burst/internal/burst"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Device  string
	Workers int
	Width   int
	Height  int
	TPS     int
	Preview bool
	// Spin is the camera yaw rate in radians per second.
	Spin  float64
	Burst burst.Config
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Device: "cpu",
		Width:  960,
		Height: 720,
		TPS:    60,
		Spin:   0.2,
		Burst:  burst.DefaultConfig(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Device, "device", c.Device, "compute device (cpu, opencl)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "CPU device workers, 0 for one per core")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "start in preview mode, re-seeding every frame")
	fs.Float64Var(&c.Spin, "spin", c.Spin, "camera yaw rate in radians per second")
	fs.IntVar(&c.Burst.EntityCount, "entities", c.Burst.EntityCount, "number of beams")
	fs.Float64Var(&c.Burst.Throttle, "throttle", c.Burst.Throttle, "simulation speed multiplier")
	fs.Float64Var(&c.Burst.Radius, "radius", c.Burst.Radius, "beam length in world units")
	fs.IntVar(&c.Burst.RandomSeed, "seed", c.Burst.RandomSeed, "seed for the beam distribution")
	fs.BoolVar(&c.Burst.DebugOverlay, "debug", c.Burst.DebugOverlay, "show the raw state buffer")
	fs.Func("color", "beam color as r,g,b[,a]; channels may exceed 1 (default "+c.Burst.Color.String()+")", func(s string) error {
		col, err := burst.ParseColor(s)
		if err != nil {
			return err
		}
		c.Burst.Color = col
		return nil
	})
}

// Validate reports configurations that cannot run.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", c.TPS)
	case c.Burst.EntityCount <= 0:
		return fmt.Errorf("entities %d must be positive", c.Burst.EntityCount)
	case c.Burst.Throttle < 0:
		return fmt.Errorf("throttle %g must not be negative", c.Burst.Throttle)
	case c.Burst.Radius <= 0:
		return fmt.Errorf("radius %g must be positive", c.Burst.Radius)
	}
	return nil
}
