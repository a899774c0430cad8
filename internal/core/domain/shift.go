package domain

import "fmt"

// Workshift is a recurring daily work window expressed in ticks-of-day.
// Each shift repeats every simulated day for the length of the run.
type Workshift struct {
	ID        int
	StartTick int
	EndTick   int
}

// NewWorkshift validates and creates a daily shift window.
func NewWorkshift(id, startTick, endTick, dayLength int) (*Workshift, error) {
	if startTick < 0 || endTick > dayLength || startTick >= endTick {
		return nil, fmt.Errorf("invalid shift window [%d, %d) for day length %d", startTick, endTick, dayLength)
	}
	return &Workshift{ID: id, StartTick: startTick, EndTick: endTick}, nil
}

// Length returns the shift length in ticks.
func (s *Workshift) Length() int {
	return s.EndTick - s.StartTick
}

// Covers reports whether the given tick-of-day falls inside the window.
func (s *Workshift) Covers(tickOfDay int) bool {
	return tickOfDay >= s.StartTick && tickOfDay < s.EndTick
}
