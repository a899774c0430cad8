package sim_test

import (
	"testing"

	"github.com/lorrc/desk-simulator/internal/core/sim"
	"github.com/stretchr/testify/assert"
)

func testFatigueParams() sim.Params {
	p := sim.DefaultParams()
	p.DecayStartTicks = 120
	p.DecayInterval = 60
	p.DecayStartValue = 0.05
	p.DecayFactor = 1.5
	p.EfficiencyFloor = 0.1
	return p
}

func TestFatigueModel_Efficiency(t *testing.T) {
	model := sim.NewFatigueModel(testFatigueParams())

	tests := []struct {
		name      string
		workTicks int
		want      float64
	}{
		{"fresh employee", 0, 1.0},
		{"just below threshold", 119, 1.0},
		{"at threshold", 120, 0.95},
		{"within first interval", 179, 0.95},
		{"one interval past threshold", 180, 1.0 - 0.05*1.5},
		{"two intervals past threshold", 240, 1.0 - 0.05*1.5*1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, model.Efficiency(tt.workTicks), 1e-9)
		})
	}
}

func TestFatigueModel_MonotonicDecay(t *testing.T) {
	model := sim.NewFatigueModel(testFatigueParams())

	prev := model.Efficiency(0)
	for ticks := 60; ticks <= 3000; ticks += 60 {
		eff := model.Efficiency(ticks)
		assert.LessOrEqual(t, eff, prev, "efficiency rose between %d and %d work ticks", ticks-60, ticks)
		prev = eff
	}
}

func TestFatigueModel_Floor(t *testing.T) {
	model := sim.NewFatigueModel(testFatigueParams())

	// Far enough into the decay curve that the raw value would go negative.
	eff := model.Efficiency(100000)
	assert.InDelta(t, 0.1, eff, 1e-9)
}
