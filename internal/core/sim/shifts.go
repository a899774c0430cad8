package sim

import (
	"log/slog"

	"github.com/lorrc/desk-simulator/internal/core/domain"
)

// ShiftScheduler moves employees through their daily shift lifecycle:
// Inactive -> WarmingUp -> Active -> CleaningUp -> Inactive. It is the only
// component besides the dispatcher that mutates employee state.
type ShiftScheduler struct {
	employees    []*domain.Employee
	dayLength    int
	warmupTicks  int
	cleanupTicks int
	logger       *slog.Logger
}

// NewShiftScheduler creates a scheduler over the run's employee table.
// The slice must already be ordered by employee ID.
func NewShiftScheduler(employees []*domain.Employee, p Params, logger *slog.Logger) *ShiftScheduler {
	return &ShiftScheduler{
		employees:    employees,
		dayLength:    p.DayLength,
		warmupTicks:  p.WarmupTicks,
		cleanupTicks: p.CleanupTicks,
		logger:       logger,
	}
}

// Update applies all shift transitions due at the given tick.
//
// An employee still serving a ticket when the shift window closes keeps
// working; the transition to Inactive happens on a later tick, once the
// dispatcher has released them.
func (s *ShiftScheduler) Update(tick int) {
	tickOfDay := tick % s.dayLength

	for _, e := range s.employees {
		shift := e.Shift
		inWindow := shift.Covers(tickOfDay)

		if e.Activity == domain.EmployeeInactive && tickOfDay == shift.StartTick {
			s.setActivity(e, domain.EmployeeWarmingUp, tick)
		}

		if e.Activity == domain.EmployeeWarmingUp {
			switch {
			case !inWindow:
				s.setActivity(e, domain.EmployeeInactive, tick)
			case tickOfDay >= shift.StartTick+s.warmupTicks:
				s.setActivity(e, domain.EmployeeActive, tick)
			}
		}

		if e.Activity == domain.EmployeeActive {
			switch {
			case !inWindow:
				if e.Idle() {
					s.setActivity(e, domain.EmployeeInactive, tick)
				}
			case s.cleanupTicks > 0 && tickOfDay >= shift.EndTick-s.cleanupTicks && e.Idle():
				s.setActivity(e, domain.EmployeeCleaningUp, tick)
			}
		}

		if e.Activity == domain.EmployeeCleaningUp && !inWindow {
			s.setActivity(e, domain.EmployeeInactive, tick)
		}
	}
}

func (s *ShiftScheduler) setActivity(e *domain.Employee, next domain.EmployeeActivity, tick int) {
	if err := e.SetActivity(next); err != nil {
		// Transitions are driven off the validated state map above, so this
		// only fires on a programming error.
		s.logger.Error("shift transition rejected",
			"employee_id", e.ID,
			"from", e.Activity,
			"to", next,
			"error", err,
		)
		return
	}
	s.logger.Debug("shift transition",
		"tick", tick,
		"employee_id", e.ID,
		"activity", next,
	)
}

// ActiveCount returns the number of employees currently accepting or doing
// work, reported in every datapoint.
func (s *ShiftScheduler) ActiveCount() int {
	n := 0
	for _, e := range s.employees {
		if e.Activity == domain.EmployeeActive {
			n++
		}
	}
	return n
}
