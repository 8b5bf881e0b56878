package ui

import (
	"math"
	"testing"

	"burst/internal/core"
)

type recordingSetter struct {
	ints   map[string]int
	floats map[string]float64
	reject bool
}

func (r *recordingSetter) SetIntParameter(key string, v int) bool {
	if r.reject {
		return false
	}
	r.ints[key] = v
	return true
}

func (r *recordingSetter) SetFloatParameter(key string, v float64) bool {
	if r.reject {
		return false
	}
	r.floats[key] = v
	return true
}

func newRecordingSetter() *recordingSetter {
	return &recordingSetter{ints: map[string]int{}, floats: map[string]float64{}}
}

func testControls() []controlState {
	return newControlStates([]core.ParameterControl{
		{Key: "entities", Label: "Beams", Type: core.ParamTypeInt, Step: 256, Min: 1, Max: 1024, HasMin: true, HasMax: true},
		{Key: "throttle", Label: "Throttle", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true},
	})
}

func TestRefreshParsesSnapshot(t *testing.T) {
	states := testControls()
	refresh(states, core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Params: []core.Parameter{
			core.IntParam("entities", "Beams", 512),
			core.FloatParam("throttle", "Throttle", 0.5),
		},
	}}})
	if !states[0].hasValue || states[0].intValue != 512 || states[0].value != "512" {
		t.Fatalf("entities state %+v", states[0])
	}
	if !states[1].hasValue || states[1].value != "0.5" {
		t.Fatalf("throttle state %+v", states[1])
	}

	refresh(states, core.ParameterSnapshot{})
	for _, s := range states {
		if s.hasValue || s.value != "--" {
			t.Fatalf("missing parameter should clear the state, got %+v", s)
		}
	}
}

func TestAdjustTargetClamps(t *testing.T) {
	states := testControls()
	states[0].hasValue, states[0].intValue = true, 1000
	if got, ok := adjustTarget(&states[0], 1); !ok || got != 1024 {
		t.Fatalf("step up from 1000 gave %v, %v", got, ok)
	}
	states[0].intValue = 1024
	if _, ok := adjustTarget(&states[0], 1); ok {
		t.Fatal("step past the maximum must be refused")
	}
	states[1].hasValue, states[1].floatValue = true, 0.05
	if got, ok := adjustTarget(&states[1], -1); !ok || got != 0 {
		t.Fatalf("step down from 0.05 gave %v, %v", got, ok)
	}
	if _, ok := adjustTarget(&testControls()[0], 1); ok {
		t.Fatal("controls without a value cannot be adjusted")
	}
}

func TestApplyUsesSetters(t *testing.T) {
	states := testControls()
	states[0].hasValue, states[0].intValue = true, 256
	states[1].hasValue, states[1].floatValue = true, 0.5
	rec := newRecordingSetter()

	if !apply(&states[0], 1, rec, rec) || rec.ints["entities"] != 512 || states[0].value != "512" {
		t.Fatalf("int apply: %+v %+v", rec.ints, states[0])
	}
	if !apply(&states[1], -1, rec, rec) || math.Abs(rec.floats["throttle"]-0.4) > 1e-9 {
		t.Fatalf("float apply: %+v", rec.floats)
	}

	rec.reject = true
	if apply(&states[0], 1, rec, rec) || states[0].intValue != 512 {
		t.Fatal("rejected update must leave the cache alone")
	}
	if apply(&states[0], 1, nil, nil) {
		t.Fatal("apply without setters must fail")
	}
}
