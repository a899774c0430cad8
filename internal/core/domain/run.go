package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the lifecycle of a simulation run record.
type RunStatus string

const (
	RunPending   RunStatus = "PENDING"
	RunRunning   RunStatus = "RUNNING"
	RunCompleted RunStatus = "COMPLETED"
	RunFailed    RunStatus = "FAILED"
)

// Run identifies one execution of the simulation engine.
type Run struct {
	ID        uuid.UUID
	Tag       string
	Number    int
	Seed      int64
	Status    RunStatus
	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
	Error     string
}

// NewRun creates a pending run record.
func NewRun(tag string, number int, seed int64) *Run {
	return &Run{
		ID:        uuid.New(),
		Tag:       tag,
		Number:    number,
		Seed:      seed,
		Status:    RunPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Datapoint is a per-interval operational snapshot emitted by the engine.
// Immutable once created; the engine does not retain it after emission.
type Datapoint struct {
	RunID           uuid.UUID `json:"runId"`
	RunTag          string    `json:"runTag"`
	RunNumber       int       `json:"runNumber"`
	Tick            int       `json:"tick"`
	QueuedFirst     int       `json:"queuedFirst"`
	QueuedSecond    int       `json:"queuedSecond"`
	InService       int       `json:"inService"`
	ActiveEmployees int       `json:"activeEmployees"`
	SolvedTotal     int       `json:"solvedTotal"`
	DeployedTotal   int       `json:"deployedTotal"`
}

// Ledger accumulates the financial outcome of a run. Owned and mutated by
// the engine only; read after the run completes. Totals never decrease.
type Ledger struct {
	Expenses     float64
	WorkingHours float64
}

// Record applies the cost of one resolved ticket.
func (l *Ledger) Record(hours, hourlyRate float64) {
	l.Expenses += hours * hourlyRate
	l.WorkingHours += hours
}

// Summary is the terminal aggregate of a run, derived from the full ticket
// set and the final ledger. Computed once, never mutated.
type Summary struct {
	RunID     uuid.UUID `json:"runId"`
	RunTag    string    `json:"runTag"`
	RunNumber int       `json:"runNumber"`
	Seed      int64     `json:"seed"`

	TotalTicks   int `json:"totalTicks"`
	TotalTickets int `json:"totalTickets"`
	FirstLevel   int `json:"firstLevel"`
	SecondLevel  int `json:"secondLevel"`
	Solved       int `json:"solved"`
	Deployed     int `json:"deployed"`
	Unresolved   int `json:"unresolved"`

	AvgResolutionTicks float64 `json:"avgResolutionTicks"`
	Expenses           float64 `json:"expenses"`
	WorkingHours       float64 `json:"workingHours"`
}
