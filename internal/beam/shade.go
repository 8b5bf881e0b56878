package beam

import "burst/internal/core"

// tailLag is how far, in phase units, the tail trails the head.
const tailLag = 0.2

// Endpoint expands one mesh vertex into a beam endpoint. selector is the
// vertex's placeholder x position: 0 for the tail, 1 for the head. The
// returned intensity fades the beam out over its life.
func Endpoint(t core.Texel, selector, radius float32) (pos [3]float32, intensity float32) {
	phase := t[3]
	head := phase
	tail := phase - tailLag
	if tail < 0 {
		tail = 0
	}
	dist := radius * (tail + (head-tail)*selector)
	pos = [3]float32{t[0] * dist, t[1] * dist, t[2] * dist}
	return pos, 1 - phase
}
