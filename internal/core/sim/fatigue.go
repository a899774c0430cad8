package sim

import "math"

// FatigueModel derives an efficiency multiplier from an employee's
// accumulated work ticks. Fatigued employees take longer, so the multiplier
// scales the effective service duration up, never the cost rate down.
type FatigueModel struct {
	startTicks int
	interval   int
	startValue float64
	factor     float64
	floor      float64
}

// NewFatigueModel builds the model from validated run parameters.
func NewFatigueModel(p Params) FatigueModel {
	return FatigueModel{
		startTicks: p.DecayStartTicks,
		interval:   p.DecayInterval,
		startValue: p.DecayStartValue,
		factor:     p.DecayFactor,
		floor:      p.EfficiencyFloor,
	}
}

// Efficiency returns the multiplier for an employee that has worked the
// given number of ticks. 1.0 until the decay threshold; beyond it the
// shortfall compounds once per whole interval elapsed. Never drops below
// the configured floor.
func (m FatigueModel) Efficiency(workTicks int) float64 {
	if workTicks < m.startTicks {
		return 1.0
	}
	intervals := (workTicks - m.startTicks) / m.interval
	decay := m.startValue * math.Pow(m.factor, float64(intervals))
	eff := 1.0 - decay
	if eff < m.floor {
		return m.floor
	}
	return eff
}
