package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog    = errors.New("employee type catalog is empty")
	ErrEmptyRoster     = errors.New("shift roster is empty")
	ErrEmptyPlan       = errors.New("ticket arrival plan is empty")
	ErrInvalidDayCount = errors.New("day count must be positive")
)

// Catalog is the immutable set of employee types available to a run.
type Catalog struct {
	types map[string]*EmployeeType
}

// NewCatalog builds a catalog, rejecting duplicates and empty input.
func NewCatalog(types []*EmployeeType) (*Catalog, error) {
	if len(types) == 0 {
		return nil, ErrEmptyCatalog
	}
	byID := make(map[string]*EmployeeType, len(types))
	for _, t := range types {
		if t.ID == "" {
			return nil, errors.New("employee type id is required")
		}
		if len(t.Levels) == 0 {
			return nil, fmt.Errorf("employee type %q has no qualified levels", t.ID)
		}
		for _, l := range t.Levels {
			if !l.Valid() {
				return nil, fmt.Errorf("employee type %q: %w: %q", t.ID, ErrInvalidLevel, l)
			}
		}
		if t.HourlyRate <= 0 {
			return nil, fmt.Errorf("employee type %q has non-positive hourly rate", t.ID)
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate employee type %q", t.ID)
		}
		byID[t.ID] = t
	}
	return &Catalog{types: byID}, nil
}

// Get returns the type with the given ID.
func (c *Catalog) Get(id string) (*EmployeeType, error) {
	t, ok := c.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmployeeType, id)
	}
	return t, nil
}

// Len returns the number of types in the catalog.
func (c *Catalog) Len() int {
	return len(c.types)
}

// RosterEntry places one employee of a catalog type on a shift.
type RosterEntry struct {
	EmployeeID int
	TypeID     string
	ShiftID    int
}

// Roster describes the shifts of a run and who works them.
type Roster struct {
	Shifts  []*Workshift
	Entries []RosterEntry
}

// Validate checks the roster for structural problems before a run starts.
func (r *Roster) Validate(catalog *Catalog) error {
	if len(r.Shifts) == 0 || len(r.Entries) == 0 {
		return ErrEmptyRoster
	}
	shiftIDs := make(map[int]bool, len(r.Shifts))
	for _, s := range r.Shifts {
		if shiftIDs[s.ID] {
			return fmt.Errorf("duplicate shift id %d", s.ID)
		}
		shiftIDs[s.ID] = true
	}
	seen := make(map[int]bool, len(r.Entries))
	for _, e := range r.Entries {
		if seen[e.EmployeeID] {
			return fmt.Errorf("duplicate employee id %d", e.EmployeeID)
		}
		seen[e.EmployeeID] = true
		if _, err := catalog.Get(e.TypeID); err != nil {
			return err
		}
		if !shiftIDs[e.ShiftID] {
			return fmt.Errorf("roster entry %d references unknown shift %d", e.EmployeeID, e.ShiftID)
		}
	}
	return nil
}

// PlannedArrival schedules one ticket. Level is empty when the plan leaves
// the difficulty to the engine's stochastic level assignment.
type PlannedArrival struct {
	Tick  int
	Level Level
}

// ArrivalPlan is the ticket generation plan for a run.
type ArrivalPlan struct {
	Days     int
	Arrivals []PlannedArrival
}

// Validate checks the plan for structural problems. A plan with zero
// arrivals is legal and yields a trivial run; a missing plan is not.
func (p *ArrivalPlan) Validate() error {
	if p == nil {
		return ErrEmptyPlan
	}
	if p.Days <= 0 {
		return ErrInvalidDayCount
	}
	for i, a := range p.Arrivals {
		if a.Tick < 0 {
			return fmt.Errorf("arrival %d has negative tick %d", i, a.Tick)
		}
		if a.Level != "" && !a.Level.Valid() {
			return fmt.Errorf("arrival %d: %w: %q", i, ErrInvalidLevel, a.Level)
		}
	}
	return nil
}
