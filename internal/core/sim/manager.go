package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/lorrc/desk-simulator/internal/core/domain"
)

// Observer receives datapoints as the engine emits them. Implementations
// must not call back into the engine.
type Observer interface {
	OnDatapoint(domain.Datapoint)
}

// managerState tracks the engine lifecycle.
type managerState string

const (
	stateInit       managerState = "INIT"
	stateRunning    managerState = "RUNNING"
	stateFinalizing managerState = "FINALIZING"
	stateDone       managerState = "DONE"
)

// ErrAlreadyRun is returned when Run is invoked on a spent manager.
var ErrAlreadyRun = errors.New("simulation manager can only run once")

// Config carries everything a Manager needs. All inputs are read-only to
// the engine; the random stream is derived from the run's seed.
type Config struct {
	Run      *domain.Run
	Params   Params
	Catalog  *domain.Catalog
	Roster   *domain.Roster
	Plan     *domain.ArrivalPlan
	Observer Observer
	Logger   *slog.Logger
}

// Manager composes the engine: it owns the clock and, once per tick, runs
// shift scheduling, arrival admission, dispatch, completion, accounting and
// datapoint emission, in that order. Single-threaded; nothing inside a tick
// blocks or performs I/O.
type Manager struct {
	run    *domain.Run
	params Params
	state  managerState

	clock       *Clock
	queue       *TicketQueue
	scheduler   *ShiftScheduler
	dispatcher  *Dispatcher
	serviceTime *ServiceTimeModel
	accounting  *Accounting

	employees     []*domain.Employee
	employeesByID map[int]*domain.Employee
	tickets       []*domain.Ticket
	arrivals      map[int][]domain.PlannedArrival

	solvedTotal   int
	deployedTotal int

	observer Observer
	logger   *slog.Logger
}

// NewManager validates all inputs and assembles the engine. Configuration
// errors surface here, before any tick is processed.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Run == nil {
		return nil, errors.New("run identity is required")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Catalog == nil {
		return nil, domain.ErrEmptyCatalog
	}
	if cfg.Roster == nil {
		return nil, domain.ErrEmptyRoster
	}
	if err := cfg.Roster.Validate(cfg.Catalog); err != nil {
		return nil, err
	}
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("run_id", cfg.Run.ID, "run_tag", cfg.Run.Tag, "run_number", cfg.Run.Number)

	shiftsByID := make(map[int]*domain.Workshift, len(cfg.Roster.Shifts))
	for _, s := range cfg.Roster.Shifts {
		if s.EndTick > cfg.Params.DayLength {
			return nil, fmt.Errorf("shift %d ends at tick %d, beyond day length %d", s.ID, s.EndTick, cfg.Params.DayLength)
		}
		if s.Length() <= cfg.Params.WarmupTicks+cfg.Params.CleanupTicks {
			return nil, fmt.Errorf("shift %d is too short for warmup and cleanup", s.ID)
		}
		shiftsByID[s.ID] = s
	}

	employees := make([]*domain.Employee, 0, len(cfg.Roster.Entries))
	employeesByID := make(map[int]*domain.Employee, len(cfg.Roster.Entries))
	for _, entry := range cfg.Roster.Entries {
		typ, err := cfg.Catalog.Get(entry.TypeID)
		if err != nil {
			return nil, err
		}
		e, err := domain.NewEmployee(entry.EmployeeID, typ, shiftsByID[entry.ShiftID])
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
		employeesByID[e.ID] = e
	}
	// Ascending ID order is the dispatch tie-break; it keeps runs
	// reproducible for a fixed seed regardless of roster file order.
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	horizon := cfg.Plan.Days * cfg.Params.DayLength
	arrivals := make(map[int][]domain.PlannedArrival)
	for _, a := range cfg.Plan.Arrivals {
		if a.Tick >= horizon {
			return nil, fmt.Errorf("arrival at tick %d is beyond the %d-tick horizon", a.Tick, horizon)
		}
		arrivals[a.Tick] = append(arrivals[a.Tick], a)
	}

	rng := rand.New(rand.NewSource(cfg.Run.Seed))
	queue := NewTicketQueue()
	serviceTime := NewServiceTimeModel(rng, cfg.Params)
	fatigue := NewFatigueModel(cfg.Params)

	return &Manager{
		run:           cfg.Run,
		params:        cfg.Params,
		state:         stateInit,
		clock:         NewClock(horizon),
		queue:         queue,
		scheduler:     NewShiftScheduler(employees, cfg.Params, logger),
		dispatcher:    NewDispatcher(queue, employees, fatigue, serviceTime, logger),
		serviceTime:   serviceTime,
		accounting:    NewAccounting(),
		employees:     employees,
		employeesByID: employeesByID,
		arrivals:      arrivals,
		observer:      cfg.Observer,
		logger:        logger,
	}, nil
}

// Run executes the simulation to its horizon and returns the summary.
// Cancellation is honoured at tick boundaries only, so every processed tick
// leaves the entity set in a consistent state.
func (m *Manager) Run(ctx context.Context) (*domain.Summary, error) {
	if m.state != stateInit {
		return nil, ErrAlreadyRun
	}
	m.state = stateRunning
	m.logger.Info("simulation started",
		"days", m.clock.Total()/m.params.DayLength,
		"total_ticks", m.clock.Total(),
		"employees", len(m.employees),
		"seed", m.run.Seed,
	)

	for !m.clock.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		m.step(m.clock.Tick())
		m.clock.Advance()
	}

	m.state = stateFinalizing
	summary := m.summarize()
	m.state = stateDone

	m.logger.Info("simulation finished",
		"tickets", summary.TotalTickets,
		"solved", summary.Solved,
		"unresolved", summary.Unresolved,
		"expenses", summary.Expenses,
	)
	return summary, nil
}

// step runs the per-tick pipeline. The ordering is load-bearing: admission
// precedes dispatch precedes completion precedes accounting, so a ticket can
// never be dispatched and completed within the same tick.
func (m *Manager) step(tick int) {
	m.scheduler.Update(tick)

	for _, a := range m.arrivals[tick] {
		level := a.Level
		if level == "" {
			level = m.serviceTime.PickLevel()
		}
		t, err := domain.NewTicket(len(m.tickets)+1, a.Tick, level)
		if err != nil {
			// Plan validation rules this out; skip rather than corrupt state.
			m.logger.Error("arrival rejected", "tick", tick, "error", err)
			continue
		}
		m.tickets = append(m.tickets, t)
		m.dispatcher.Admit(t)
		m.logger.Debug("ticket arrived", "tick", tick, "ticket_id", t.ID, "level", t.Level)
	}

	m.dispatcher.Assign(tick)

	for _, t := range m.dispatcher.Complete(tick) {
		m.accounting.RecordResolution(t, m.employeesByID[t.EmployeeID].Type.HourlyRate)
		m.solvedTotal++
	}

	m.dispatcher.TickFatigue()

	if (tick+1)%m.params.DayLength == 0 {
		m.deploySolved(tick)
	}

	// Hooks fire strictly after the tick pipeline.
	if tick%m.params.DatapointInterval == 0 {
		m.emit(tick)
	}
}

// deploySolved flips every solved ticket to deployed at the day boundary.
func (m *Manager) deploySolved(tick int) {
	for _, t := range m.tickets {
		if t.State != domain.TicketSolved {
			continue
		}
		if err := t.Deploy(tick); err != nil {
			m.logger.Error("deployment rejected", "ticket_id", t.ID, "error", err)
			continue
		}
		m.deployedTotal++
	}
}

func (m *Manager) emit(tick int) {
	if m.observer == nil {
		return
	}
	m.observer.OnDatapoint(domain.Datapoint{
		RunID:           m.run.ID,
		RunTag:          m.run.Tag,
		RunNumber:       m.run.Number,
		Tick:            tick,
		QueuedFirst:     m.queue.Depth(domain.LevelFirst),
		QueuedSecond:    m.queue.Depth(domain.LevelSecond),
		InService:       m.dispatcher.InServiceCount(),
		ActiveEmployees: m.scheduler.ActiveCount(),
		SolvedTotal:     m.solvedTotal,
		DeployedTotal:   m.deployedTotal,
	})
}

// summarize derives the terminal aggregate from the full ticket set and the
// final ledger.
func (m *Manager) summarize() *domain.Summary {
	s := &domain.Summary{
		RunID:      m.run.ID,
		RunTag:     m.run.Tag,
		RunNumber:  m.run.Number,
		Seed:       m.run.Seed,
		TotalTicks: m.clock.Total(),
	}

	var resolutionTicks int
	for _, t := range m.tickets {
		s.TotalTickets++
		switch t.Level {
		case domain.LevelFirst:
			s.FirstLevel++
		case domain.LevelSecond:
			s.SecondLevel++
		}
		if t.Solved() {
			s.Solved++
			resolutionTicks += t.ResolutionTicks()
		} else {
			s.Unresolved++
		}
		if t.State == domain.TicketDeployed {
			s.Deployed++
		}
	}
	if s.Solved > 0 {
		s.AvgResolutionTicks = float64(resolutionTicks) / float64(s.Solved)
	}

	ledger := m.accounting.Ledger()
	s.Expenses = ledger.Expenses
	s.WorkingHours = ledger.WorkingHours
	return s
}

// Tickets exposes the full ticket record set after a run.
func (m *Manager) Tickets() []*domain.Ticket {
	return m.tickets
}

// Ledger exposes the final accounting totals after a run.
func (m *Manager) Ledger() domain.Ledger {
	return m.accounting.Ledger()
}
