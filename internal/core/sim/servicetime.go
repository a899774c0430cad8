package sim

import (
	"math"
	"math/rand"

	"github.com/lorrc/desk-simulator/internal/core/domain"
)

// ServiceTimeModel draws stochastic resolution durations. It shares the
// run's single random stream so that a fixed seed reproduces a run
// bit-for-bit.
type ServiceTimeModel struct {
	rng *rand.Rand

	firstMean    float64
	firstStdDev  float64
	secondMean   float64
	secondStdDev float64
	levelFactor  float64
}

// NewServiceTimeModel builds the model on top of the run's random stream.
func NewServiceTimeModel(rng *rand.Rand, p Params) *ServiceTimeModel {
	return &ServiceTimeModel{
		rng:          rng,
		firstMean:    p.FirstLevelMean,
		firstStdDev:  p.FirstLevelStdDev,
		secondMean:   p.SecondLevelMean,
		secondStdDev: p.SecondLevelStdDev,
		levelFactor:  p.LevelDistributionFactor,
	}
}

// Sample draws a base duration from the level's normal distribution and
// stretches it by the employee's current inefficiency. Non-positive draws
// are clamped to one tick rather than resampled, so one assignment always
// consumes exactly one draw from the stream.
func (m *ServiceTimeModel) Sample(level domain.Level, efficiency float64) int {
	mean, stddev := m.firstMean, m.firstStdDev
	if level == domain.LevelSecond {
		mean, stddev = m.secondMean, m.secondStdDev
	}

	base := m.rng.NormFloat64()*stddev + mean
	if base < 1 {
		base = 1
	}

	duration := int(math.Round(base / efficiency))
	if duration < 1 {
		duration = 1
	}
	return duration
}

// PickLevel assigns a difficulty to an arrival the plan left unpinned.
// A factor F gives first level odds of F/(F+1).
func (m *ServiceTimeModel) PickLevel() domain.Level {
	if m.rng.Float64() < m.levelFactor/(m.levelFactor+1) {
		return domain.LevelFirst
	}
	return domain.LevelSecond
}
