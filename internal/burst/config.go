package burst

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color whose channels may exceed 1 for HDR output.
type Color struct {
	R, G, B, A float32
}

// White is the default beam color.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// String formats the color in the form accepted by ParseColor.
func (c Color) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", c.R, c.G, c.B, c.A)
}

// ParseColor parses "r,g,b" or "r,g,b,a" float channels. Alpha defaults to 1.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: expected r,g,b[,a]", s)
	}
	ch := [4]float32{1, 1, 1, 1}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q channel %d: %w", s, i, err)
		}
		if v < 0 {
			return Color{}, fmt.Errorf("color %q channel %d is negative", s, i)
		}
		ch[i] = float32(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// Config holds every host-facing option of the effect.
type Config struct {
	// EntityCount is the target number of beams; it sizes the state grid.
	EntityCount int
	// Throttle scales the time delta handed to the kernel.
	Throttle float64
	// Radius and Color pass through to the line renderer untouched.
	Radius float64
	Color  Color
	// RandomSeed feeds the kernel's cold-start distribution.
	RandomSeed int
	// DebugOverlay enables the diagnostic blit of the current state buffer.
	DebugOverlay bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		EntityCount: 32768,
		Throttle:    1,
		Radius:      1,
		Color:       White,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["entities"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.EntityCount = parsed
		}
	}
	if v, ok := cfg["throttle"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Throttle = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["color"]; ok {
		if parsed, err := ParseColor(v); err == nil {
			c.Color = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.RandomSeed = parsed
		}
	}
	if v, ok := cfg["debug"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.DebugOverlay = parsed
		}
	}
	return c
}
