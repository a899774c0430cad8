package sim

import (
	"errors"
	"fmt"
)

// Params are the immutable tunables of one simulation run. They are built by
// the caller (internal/config for the real binaries, literals in tests) and
// handed to the engine at construction; the engine never reads ambient state.
type Params struct {
	// DayLength is the number of ticks per simulated day. One tick is one
	// simulated minute.
	DayLength int

	// WarmupTicks is how long a freshly started employee stays WarmingUp
	// before accepting work.
	WarmupTicks int

	// CleanupTicks is the window before shift end in which an idle employee
	// stops accepting new work.
	CleanupTicks int

	// Fatigue decay curve: no decay before DecayStartTicks of accumulated
	// work; beyond it the shortfall compounds once per DecayInterval.
	DecayStartTicks int
	DecayInterval   int
	DecayStartValue float64
	DecayFactor     float64
	EfficiencyFloor float64

	// Service time distributions per level, in ticks.
	FirstLevelMean    float64
	FirstLevelStdDev  float64
	SecondLevelMean   float64
	SecondLevelStdDev float64

	// LevelDistributionFactor F gives unpinned arrivals a F/(F+1) chance of
	// being first level.
	LevelDistributionFactor float64

	// DatapointInterval is the emission cadence in ticks (1 = every tick).
	DatapointInterval int
}

// Validate rejects parameter sets the engine cannot run with.
func (p Params) Validate() error {
	if p.DayLength <= 0 {
		return errors.New("day length must be positive")
	}
	if p.WarmupTicks < 0 || p.CleanupTicks < 0 {
		return errors.New("warmup and cleanup durations must be >= 0")
	}
	if p.WarmupTicks+p.CleanupTicks >= p.DayLength {
		return fmt.Errorf("warmup (%d) + cleanup (%d) must fit inside a day of %d ticks",
			p.WarmupTicks, p.CleanupTicks, p.DayLength)
	}
	if p.DecayStartTicks < 0 {
		return errors.New("decay start must be >= 0")
	}
	if p.DecayInterval <= 0 {
		return errors.New("decay interval must be positive")
	}
	if p.DecayStartValue <= 0 || p.DecayStartValue >= 1 {
		return errors.New("decay start value must be in (0, 1)")
	}
	if p.DecayFactor < 1 {
		return errors.New("decay factor must be >= 1")
	}
	if p.EfficiencyFloor <= 0 || p.EfficiencyFloor > 1 {
		return errors.New("efficiency floor must be in (0, 1]")
	}
	if p.FirstLevelMean <= 0 || p.SecondLevelMean <= 0 {
		return errors.New("service time means must be positive")
	}
	if p.FirstLevelStdDev < 0 || p.SecondLevelStdDev < 0 {
		return errors.New("service time standard deviations must be >= 0")
	}
	if p.LevelDistributionFactor <= 0 {
		return errors.New("level distribution factor must be positive")
	}
	if p.DatapointInterval <= 0 {
		return errors.New("datapoint interval must be positive")
	}
	return nil
}

// DefaultParams returns the tunables used when the environment does not
// override them: 8h shifts fit a 24h day, first level tickets dominate 2:1.
func DefaultParams() Params {
	return Params{
		DayLength:               1440,
		WarmupTicks:             15,
		CleanupTicks:            15,
		DecayStartTicks:         120,
		DecayInterval:           60,
		DecayStartValue:         0.05,
		DecayFactor:             1.5,
		EfficiencyFloor:         0.1,
		FirstLevelMean:          30,
		FirstLevelStdDev:        10,
		SecondLevelMean:         90,
		SecondLevelStdDev:       30,
		LevelDistributionFactor: 2,
		DatapointInterval:       60,
	}
}
