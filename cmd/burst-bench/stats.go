package main

import (
	"fmt"
	"math"

	"burst/internal/core"
)

// stateStats summarizes one readback of a state buffer.
type stateStats struct {
	cells     int
	phaseMean float64
	phaseMin  float64
	phaseMax  float64
	// normErr is the largest deviation of a direction from unit length.
	normErr float64
}

func (s stateStats) String() string {
	return fmt.Sprintf("phase mean=%.3f min=%.3f max=%.3f normErr=%.2e", s.phaseMean, s.phaseMin, s.phaseMax, s.normErr)
}

func summarize(texels []float32) stateStats {
	n := len(texels) / core.Channels
	if n == 0 {
		return stateStats{}
	}
	st := stateStats{cells: n, phaseMin: math.Inf(1), phaseMax: math.Inf(-1)}
	var sum float64
	for i := 0; i < n; i++ {
		t := texels[i*core.Channels : (i+1)*core.Channels]
		phase := float64(t[3])
		sum += phase
		st.phaseMin = math.Min(st.phaseMin, phase)
		st.phaseMax = math.Max(st.phaseMax, phase)
		norm := math.Sqrt(float64(t[0]*t[0] + t[1]*t[1] + t[2]*t[2]))
		st.normErr = math.Max(st.normErr, math.Abs(norm-1))
	}
	st.phaseMean = sum / float64(n)
	return st
}
