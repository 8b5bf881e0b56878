package ui

import (
	"math"
	"strconv"

	"burst/internal/core"
)

// controlState caches the HUD view of one adjustable parameter.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refresh loads the current value of every control from snap.
func refresh(states []controlState, snap core.ParameterSnapshot) {
	for i := range states {
		s := &states[i]
		s.hasValue = false
		s.value = "--"
		param, ok := snap.Lookup(s.control.Key)
		if !ok {
			continue
		}
		switch s.control.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			s.intValue, s.floatValue = v, float64(v)
			s.value = strconv.Itoa(v)
			s.hasValue = true
		case core.ParamTypeFloat:
			v, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			s.floatValue = v
			s.value = formatFloat(s.control, v)
			s.hasValue = true
		}
	}
}

// adjustTarget computes the value one step in direction from the current
// value, clamped to the control range. ok is false when the step would not
// change anything.
func adjustTarget(s *controlState, direction int) (float64, bool) {
	if s == nil || direction == 0 || !s.hasValue {
		return 0, false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		step := int(math.Round(s.control.Step))
		if step <= 0 {
			step = 1
		}
		target := s.control.Clamp(float64(s.intValue + direction*step))
		target = math.Round(target)
		return target, int(target) != s.intValue
	case core.ParamTypeFloat:
		step := s.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := s.control.Clamp(s.floatValue + float64(direction)*step)
		return target, math.Abs(target-s.floatValue) >= 1e-9
	default:
		return 0, false
	}
}

// apply steps the control through the matching setter and updates the cache
// on success.
func apply(s *controlState, direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	target, ok := adjustTarget(s, direction)
	if !ok {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(s.control.Key, int(target)) {
			return false
		}
		s.intValue, s.floatValue = int(target), target
		s.value = strconv.Itoa(int(target))
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, target) {
			return false
		}
		s.floatValue = target
		s.value = formatFloat(s.control, target)
	}
	return true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
