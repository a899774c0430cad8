package domain

import (
	"errors"
	"fmt"
)

// Pre-defined errors for domain-specific validation.
var (
	ErrInvalidStateTransition = errors.New("invalid ticket state transition")
	ErrInvalidLevel           = errors.New("invalid difficulty level")
	ErrTicketNotAssigned      = errors.New("ticket has no assigned employee")
)

// Level represents the support tier a ticket requires.
type Level string

const (
	LevelFirst  Level = "FIRST"
	LevelSecond Level = "SECOND"
)

// Levels lists all difficulty levels in dispatch order.
var Levels = []Level{LevelFirst, LevelSecond}

// Valid reports whether the level is one of the known tiers.
func (l Level) Valid() bool {
	return l == LevelFirst || l == LevelSecond
}

// TicketState represents the possible states of a simulated ticket.
type TicketState string

const (
	TicketQueued    TicketState = "QUEUED"
	TicketInService TicketState = "IN_SERVICE"
	TicketSolved    TicketState = "SOLVED"
	TicketDeployed  TicketState = "DEPLOYED"
)

// Ticket is a single unit of support work flowing through the simulation.
// Tickets are created at their planned arrival tick and are never destroyed
// during a run: unresolved ones survive into the final summary.
type Ticket struct {
	ID          int
	ArrivalTick int
	Level       Level
	State       TicketState

	// EmployeeID is meaningful from the moment the ticket enters service.
	EmployeeID   int
	Started      bool
	StartTick    int
	Duration     int
	SolvedTick   int
	DeployedTick int
}

// NewTicket is a factory function to create a valid queued ticket.
func NewTicket(id, arrivalTick int, level Level) (*Ticket, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	if arrivalTick < 0 {
		return nil, fmt.Errorf("arrival tick must be >= 0, got %d", arrivalTick)
	}
	return &Ticket{
		ID:          id,
		ArrivalTick: arrivalTick,
		Level:       level,
		State:       TicketQueued,
	}, nil
}

// validTicketTransitions defines the ticket lifecycle. Deployment only ever
// follows resolution.
var validTicketTransitions = map[TicketState][]TicketState{
	TicketQueued:    {TicketInService},
	TicketInService: {TicketSolved},
	TicketSolved:    {TicketDeployed},
	TicketDeployed:  {},
}

func (t *Ticket) transition(next TicketState) error {
	for _, s := range validTicketTransitions[t.State] {
		if s == next {
			t.State = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, t.State, next)
}

// StartService moves a queued ticket into service with the given employee,
// recording the start tick and the sampled resolution duration.
func (t *Ticket) StartService(employeeID, tick, duration int) error {
	if duration < 1 {
		return fmt.Errorf("service duration must be >= 1 tick, got %d", duration)
	}
	if err := t.transition(TicketInService); err != nil {
		return err
	}
	t.EmployeeID = employeeID
	t.Started = true
	t.StartTick = tick
	t.Duration = duration
	return nil
}

// Resolve marks an in-service ticket as solved at the given tick.
func (t *Ticket) Resolve(tick int) error {
	if !t.Started {
		return ErrTicketNotAssigned
	}
	if err := t.transition(TicketSolved); err != nil {
		return err
	}
	t.SolvedTick = tick
	return nil
}

// Deploy marks a solved ticket as deployed at the given tick.
func (t *Ticket) Deploy(tick int) error {
	if err := t.transition(TicketDeployed); err != nil {
		return err
	}
	t.DeployedTick = tick
	return nil
}

// Solved reports whether the ticket reached resolution (deployed included).
func (t *Ticket) Solved() bool {
	return t.State == TicketSolved || t.State == TicketDeployed
}

// ResolutionTicks returns the ticks the ticket spent from arrival to
// resolution, or 0 if it never resolved.
func (t *Ticket) ResolutionTicks() int {
	if !t.Solved() {
		return 0
	}
	return t.SolvedTick - t.ArrivalTick
}
