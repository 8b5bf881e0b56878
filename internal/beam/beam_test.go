package beam

import (
	"math"
	"testing"

	"burst/internal/core"
	"burst/internal/device"
)

type gridSampler struct{ g *core.StateGrid }

func (s gridSampler) Fetch(x, y int) core.Texel { return s.g.Fetch(x, y) }

func length(t core.Texel) float64 {
	return math.Sqrt(float64(t[0]*t[0] + t[1]*t[1] + t[2]*t[2]))
}

func TestSeedIsDeterministicUnitDirections(t *testing.T) {
	p := device.Params{Seed: 42}
	for y := 0; y < 4; y++ {
		for x := 0; x < 64; x++ {
			a := Seed(p, x, y, 64, 4)
			if a != Seed(p, x, y, 64, 4) {
				t.Fatalf("seed of (%d,%d) not deterministic", x, y)
			}
			if l := length(a); math.Abs(l-1) > 1e-4 {
				t.Fatalf("direction of (%d,%d) has length %f", x, y, l)
			}
			if a[3] < 0 || a[3] >= 1 {
				t.Fatalf("phase of (%d,%d) = %f out of range", x, y, a[3])
			}
		}
	}
	if Seed(p, 1, 1, 64, 4) == Seed(device.Params{Seed: 43}, 1, 1, 64, 4) {
		t.Fatal("different seeds should give different beams")
	}
}

func TestStepAdvancesPhase(t *testing.T) {
	g := core.NewStateGrid(2, 1)
	g.Store(0, 0, core.Texel{0, 0, 1, 0.1})
	p := device.Params{Seed: 1, Throttle: 1, Delta: 0.01}

	next := Step(p, gridSampler{g}, 0, 0, 2, 1)
	if next[3] <= 0.1 || next[3] > 0.1+0.01*(minSpeed+speedRange) {
		t.Fatalf("phase advanced to %f", next[3])
	}
	if next[0] != 0 || next[1] != 0 || next[2] != 1 {
		t.Fatalf("direction changed without respawn: %v", next)
	}

	frozen := Step(device.Params{Seed: 1, Throttle: 0, Delta: 0.01}, gridSampler{g}, 0, 0, 2, 1)
	if frozen != g.Fetch(0, 0) {
		t.Fatalf("zero throttle should freeze the beam, got %v", frozen)
	}
}

func TestStepRespawnsOnWrap(t *testing.T) {
	g := core.NewStateGrid(1, 1)
	g.Store(0, 0, core.Texel{0, 0, 1, 0.99})
	next := Step(device.Params{Seed: 5, Throttle: 1, Delta: 0.5}, gridSampler{g}, 0, 0, 1, 1)
	if next[3] < 0 || next[3] >= 1 {
		t.Fatalf("wrapped phase %f out of range", next[3])
	}
	if next[0] == 0 && next[1] == 0 && next[2] == 1 {
		t.Fatal("expected a new direction after the phase wrapped")
	}
	if l := length(next); math.Abs(l-1) > 1e-4 {
		t.Fatalf("respawned direction has length %f", l)
	}
}

func TestEndpointTrailsHead(t *testing.T) {
	beam := core.Texel{1, 0, 0, 0.5}
	tail, fade := Endpoint(beam, 0, 10)
	head, _ := Endpoint(beam, 1, 10)
	if math.Abs(float64(tail[0]-3)) > 1e-5 || math.Abs(float64(head[0]-5)) > 1e-5 {
		t.Fatalf("tail %v head %v", tail, head)
	}
	if fade != 0.5 {
		t.Fatalf("intensity %f, expected 0.5", fade)
	}

	young := core.Texel{0, 1, 0, 0.1}
	tail, _ = Endpoint(young, 0, 10)
	if tail[1] != 0 {
		t.Fatalf("tail of a young beam should sit at the origin, got %v", tail)
	}
}

func TestProgramHasBothRenditions(t *testing.T) {
	prog := Program()
	if prog.Seed == nil || prog.Step == nil || prog.OpenCL == "" {
		t.Fatal("program must carry Go and OpenCL renditions")
	}
}
