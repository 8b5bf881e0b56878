package main

import (
	"math"
	"testing"
	"time"

	"burst/internal/burst"
	"burst/internal/core"
	"burst/internal/device"
)

func TestSummarize(t *testing.T) {
	st := summarize([]float32{
		1, 0, 0, 0.25,
		0, 1, 0, 0.75,
		0, 0, 2, 0.5,
	})
	if st.cells != 3 {
		t.Fatalf("cells = %d", st.cells)
	}
	if math.Abs(st.phaseMean-0.5) > 1e-9 || st.phaseMin != 0.25 || st.phaseMax != 0.75 {
		t.Fatalf("phase stats %+v", st)
	}
	if math.Abs(st.normErr-1) > 1e-9 {
		t.Fatalf("normErr = %f, expected 1", st.normErr)
	}
	if summarize(nil) != (stateStats{}) {
		t.Fatal("empty input should give zero stats")
	}
}

func TestParseCounts(t *testing.T) {
	got, err := parseCounts("256, 32768,40000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []int{256, 32768, 40000}
	if len(got) != len(want) {
		t.Fatalf("counts %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("counts %v, expected %v", got, want)
		}
	}
	for _, bad := range []string{"", "0", "12,x"} {
		if _, err := parseCounts(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRunScenario(t *testing.T) {
	dev, err := device.Open("cpu", device.Options{Workers: 2})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer dev.Close()

	cfg := burst.DefaultConfig()
	cfg.EntityCount = 300
	res, err := runScenario(dev, cfg, 5)
	if err != nil {
		t.Fatalf("scenario: %v", err)
	}
	if res.grid.W != core.GridWidth || res.grid.H != 2 || res.ticks != 5 {
		t.Fatalf("result %+v", res)
	}
	if res.stats.cells != core.GridWidth*2 {
		t.Fatalf("cells = %d", res.stats.cells)
	}
	if res.stats.normErr > 1e-3 {
		t.Fatalf("directions drifted from unit length: %g", res.stats.normErr)
	}
	if (scenarioResult{ticks: 10}).ticksPerSecond() != 0 {
		t.Fatal("zero elapsed should report zero ticks/s")
	}
	if got := (scenarioResult{ticks: 10, elapsed: 2 * time.Second}).ticksPerSecond(); got != 5 {
		t.Fatalf("ticksPerSecond = %f", got)
	}
}
