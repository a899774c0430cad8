package sim

import "github.com/lorrc/desk-simulator/internal/core/domain"

// ticksPerHour converts service durations to billable hours; one tick is
// one simulated minute.
const ticksPerHour = 60.0

// Accounting accumulates working hours and expenses as tickets resolve.
// Resolution is final: totals only ever grow.
type Accounting struct {
	ledger domain.Ledger
}

// NewAccounting starts an empty ledger.
func NewAccounting() *Accounting {
	return &Accounting{}
}

// RecordResolution books the cost of one resolved ticket at the given
// employee rate.
func (a *Accounting) RecordResolution(t *domain.Ticket, hourlyRate float64) {
	hours := float64(t.Duration) / ticksPerHour
	a.ledger.Record(hours, hourlyRate)
}

// Ledger returns the running totals.
func (a *Accounting) Ledger() domain.Ledger {
	return a.ledger
}
