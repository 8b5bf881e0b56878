package burst

import (
	"fmt"
	"math"

	"burst/internal/core"
)

const maxEntities = core.GridWidth * core.MaxGridHeight * 2

// Parameters reports the configuration and simulation status.
func (e *Effect) Parameters() core.ParameterSnapshot {
	cfg := e.cfg
	aliased := "no"
	if e.grid.Capacity() > 0 && e.grid.Aliased(cfg.EntityCount) {
		aliased = fmt.Sprintf("yes (%d over)", cfg.EntityCount-e.grid.Capacity())
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Burst",
			Params: []core.Parameter{
				core.IntParam("entities", "Beams", cfg.EntityCount),
				core.FloatParam("throttle", "Throttle", cfg.Throttle),
				core.FloatParam("radius", "Radius", cfg.Radius),
				core.TextParam("color", "Color", cfg.Color.String()),
				core.IntParam("seed", "Seed", cfg.RandomSeed),
				core.BoolParam("debug", "Debug overlay", cfg.DebugOverlay),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				core.TextParam("device", "Device", e.dev.Name()),
				core.TextParam("grid", "Grid", fmt.Sprintf("%dx%d", e.grid.W, e.grid.H)),
				core.IntParam("capacity", "Capacity", e.grid.Capacity()),
				core.TextParam("aliased", "Aliased", aliased),
				core.TextParam("state", "State", e.stepper.State().String()),
				core.TextParam("ticks", "Ticks", fmt.Sprint(e.ticks)),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (e *Effect) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "entities", Label: "Beams", Type: core.ParamTypeInt, Step: core.GridWidth * 8, Min: 1, Max: maxEntities, HasMin: true, HasMax: true},
		{Key: "throttle", Label: "Throttle", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 10, HasMin: true, HasMax: true},
		{Key: "radius", Label: "Radius", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 100, HasMin: true, HasMax: true},
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
	}
}

func (e *Effect) control(key string) (core.ParameterControl, bool) {
	for _, c := range e.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter updates an integer parameter, clamped to its control
// range, and schedules a reset.
func (e *Effect) SetIntParameter(key string, value int) bool {
	ctrl, ok := e.control(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	cfg := e.cfg
	switch key {
	case "entities":
		cfg.EntityCount = value
	case "seed":
		cfg.RandomSeed = value
	default:
		return false
	}
	e.SetConfig(cfg)
	return true
}

// SetFloatParameter updates a float parameter, clamped to its control range,
// and schedules a reset.
func (e *Effect) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := e.control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat || math.IsNaN(value) {
		return false
	}
	value = ctrl.Clamp(value)
	cfg := e.cfg
	switch key {
	case "throttle":
		cfg.Throttle = value
	case "radius":
		cfg.Radius = value
	default:
		return false
	}
	e.SetConfig(cfg)
	return true
}

// SetDebugOverlay toggles the diagnostic blit from the next Advance on. The
// beam state is kept.
func (e *Effect) SetDebugOverlay(on bool) {
	e.cfg.DebugOverlay = on
}
