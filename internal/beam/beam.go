// Package beam implements the burst kernel: every texel holds one beam as a
// unit direction (xyz) and a life phase in [0, 1) (w). Beams fly outward from
// the origin and respawn with a fresh direction when their phase wraps.
package beam

import (
	"math"

	"burst/internal/core"
	"burst/internal/device"
)

// Hash salts for the independent per-cell random streams.
const (
	saltDirA uint32 = iota
	saltDirB
	saltPhase
	saltSpeed
)

const (
	minSpeed   = 0.5
	speedRange = 1.0
)

// Program returns the burst kernel in both its Go and OpenCL renditions.
func Program() device.Program {
	return device.Program{
		Name:   "burst",
		Seed:   Seed,
		Step:   Step,
		OpenCL: openCLSource,
	}
}

// Seed derives a beam from the seed and cell address alone.
func Seed(p device.Params, x, y, _, _ int) core.Texel {
	s := uint32(p.Seed)
	dx, dy, dz := direction(core.HashCell(s, x, y, saltDirA), core.HashCell(s, x, y, saltDirB))
	return core.Texel{dx, dy, dz, core.Unit(core.HashCell(s, x, y, saltPhase))}
}

// Step advances the phase of one beam and respawns it when the phase wraps.
func Step(p device.Params, prev device.Sampler, x, y, _, _ int) core.Texel {
	t := prev.Fetch(x, y)
	s := uint32(p.Seed)
	speed := minSpeed + speedRange*core.Unit(core.HashCell(s, x, y, saltSpeed))
	phase := t[3] + p.Delta*p.Throttle*speed
	wraps := float32(math.Floor(float64(phase)))
	if wraps != 0 {
		rs := s ^ math.Float32bits(t[0])
		salt := math.Float32bits(t[1]) ^ math.Float32bits(t[2])
		t[0], t[1], t[2] = direction(core.HashCell(rs, x, y, salt), core.HashCell(rs, x, y, salt^1))
	}
	t[3] = phase - wraps
	return t
}

// direction maps two hashes to a point on the unit sphere.
func direction(a, b uint32) (float32, float32, float32) {
	z := float64(core.Unit(a))*2 - 1
	theta := float64(core.Unit(b)) * 2 * math.Pi
	r := math.Sqrt(math.Max(0, 1-z*z))
	return float32(r * math.Cos(theta)), float32(r * math.Sin(theta)), float32(z)
}
