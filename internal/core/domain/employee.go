package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEmployeeType     = errors.New("unknown employee type")
	ErrEmployeeBusy            = errors.New("employee is already serving a ticket")
	ErrEmployeeNotAccepting    = errors.New("employee is not accepting work")
	ErrInvalidEmployeeActivity = errors.New("invalid employee activity transition")
)

// EmployeeType describes a class of support staff: which tiers it may
// handle and what an hour of its time costs. Loaded once per run, immutable.
type EmployeeType struct {
	ID         string
	Name       string
	Levels     []Level
	HourlyRate float64
}

// QualifiedFor reports whether this type may handle the given tier.
func (t EmployeeType) QualifiedFor(level Level) bool {
	for _, l := range t.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// NativeLevel is the tier the type primarily serves. The dispatcher drains
// this backlog before falling back to the other qualified tiers.
func (t EmployeeType) NativeLevel() Level {
	if len(t.Levels) == 0 {
		return LevelFirst
	}
	return t.Levels[0]
}

// EmployeeActivity represents an employee's position in the shift lifecycle.
type EmployeeActivity string

const (
	EmployeeInactive   EmployeeActivity = "INACTIVE"
	EmployeeWarmingUp  EmployeeActivity = "WARMING_UP"
	EmployeeActive     EmployeeActivity = "ACTIVE"
	EmployeeCleaningUp EmployeeActivity = "CLEANING_UP"
)

// validActivityTransitions defines the shift lifecycle. CleaningUp may be
// skipped entirely when the shift ends while the employee is mid-ticket.
var validActivityTransitions = map[EmployeeActivity][]EmployeeActivity{
	EmployeeInactive:   {EmployeeWarmingUp},
	EmployeeWarmingUp:  {EmployeeActive, EmployeeInactive},
	EmployeeActive:     {EmployeeCleaningUp, EmployeeInactive},
	EmployeeCleaningUp: {EmployeeInactive},
}

// Employee is a simulated support agent bound to one recurring shift.
// The record is owned by the simulation's employee table; tickets reference
// it by ID, never by copy.
type Employee struct {
	ID       int
	Type     *EmployeeType
	Shift    *Workshift
	Activity EmployeeActivity

	// FatigueTicks counts ticks worked since the shift began. It survives
	// idle gaps within a shift and resets only on transition to Inactive.
	FatigueTicks int

	// CurrentTicket is non-nil only while serving.
	CurrentTicket *Ticket
}

// NewEmployee creates an off-shift employee of the given type.
func NewEmployee(id int, typ *EmployeeType, shift *Workshift) (*Employee, error) {
	if typ == nil {
		return nil, ErrUnknownEmployeeType
	}
	if shift == nil {
		return nil, errors.New("employee requires a workshift")
	}
	return &Employee{
		ID:       id,
		Type:     typ,
		Shift:    shift,
		Activity: EmployeeInactive,
	}, nil
}

// SetActivity applies a shift-lifecycle transition, enforcing the state map.
func (e *Employee) SetActivity(next EmployeeActivity) error {
	if next == e.Activity {
		return nil
	}
	for _, a := range validActivityTransitions[e.Activity] {
		if a == next {
			e.Activity = next
			if next == EmployeeInactive {
				e.FatigueTicks = 0
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidEmployeeActivity, e.Activity, next)
}

// Idle reports whether the employee has no ticket in service.
func (e *Employee) Idle() bool {
	return e.CurrentTicket == nil
}

// Available reports whether the employee may accept new work this tick.
func (e *Employee) Available() bool {
	return e.Activity == EmployeeActive && e.Idle()
}

// BeginService attaches a ticket to the employee.
func (e *Employee) BeginService(t *Ticket) error {
	if !e.Idle() {
		return ErrEmployeeBusy
	}
	if e.Activity != EmployeeActive {
		return ErrEmployeeNotAccepting
	}
	e.CurrentTicket = t
	return nil
}

// EndService detaches the finished ticket. Fatigue is kept: the counter
// tracks work done this shift, not just the last ticket.
func (e *Employee) EndService() {
	e.CurrentTicket = nil
}
