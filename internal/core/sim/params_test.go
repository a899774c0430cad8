package sim_test

import (
	"testing"

	"github.com/lorrc/desk-simulator/internal/core/sim"
	"github.com/stretchr/testify/assert"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(p *sim.Params)
		expectError bool
	}{
		{"defaults are valid", func(p *sim.Params) {}, false},
		{"zero day length", func(p *sim.Params) { p.DayLength = 0 }, true},
		{"negative warmup", func(p *sim.Params) { p.WarmupTicks = -1 }, true},
		{"warmup and cleanup fill the day", func(p *sim.Params) { p.WarmupTicks = 720; p.CleanupTicks = 720 }, true},
		{"zero decay interval", func(p *sim.Params) { p.DecayInterval = 0 }, true},
		{"decay start value of one", func(p *sim.Params) { p.DecayStartValue = 1 }, true},
		{"decay factor below one", func(p *sim.Params) { p.DecayFactor = 0.9 }, true},
		{"zero efficiency floor", func(p *sim.Params) { p.EfficiencyFloor = 0 }, true},
		{"floor of exactly one", func(p *sim.Params) { p.EfficiencyFloor = 1 }, false},
		{"zero first level mean", func(p *sim.Params) { p.FirstLevelMean = 0 }, true},
		{"negative stddev", func(p *sim.Params) { p.SecondLevelStdDev = -1 }, true},
		{"zero level factor", func(p *sim.Params) { p.LevelDistributionFactor = 0 }, true},
		{"zero datapoint interval", func(p *sim.Params) { p.DatapointInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := sim.DefaultParams()
			tt.mutate(&params)

			err := params.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
