package sim

import (
	"log/slog"

	"github.com/lorrc/desk-simulator/internal/core/domain"
)

// Dispatcher matches idle qualified employees to queued tickets and drives
// tickets already in service to completion. All assignment decisions are
// deterministic for a fixed random seed: employees are visited in ascending
// ID order and each assignment consumes exactly one duration draw.
type Dispatcher struct {
	queue       *TicketQueue
	employees   []*domain.Employee
	fatigue     FatigueModel
	serviceTime *ServiceTimeModel
	logger      *slog.Logger

	inService []*domain.Ticket
}

// NewDispatcher wires the dispatcher over the run's employee table. The
// slice must already be ordered by employee ID.
func NewDispatcher(queue *TicketQueue, employees []*domain.Employee, fatigue FatigueModel, serviceTime *ServiceTimeModel, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:       queue,
		employees:   employees,
		fatigue:     fatigue,
		serviceTime: serviceTime,
		logger:      logger,
	}
}

// Admit places a newly arrived ticket in its backlog.
func (d *Dispatcher) Admit(t *domain.Ticket) {
	d.queue.Push(t)
}

// Assign gives queued tickets to every employee able to accept work this
// tick. The sampled duration already includes the fatigue stretch, so a
// tired employee books more ticks for the same base draw.
func (d *Dispatcher) Assign(tick int) {
	for _, e := range d.employees {
		if !e.Available() {
			continue
		}
		t := d.queue.PopFor(e)
		if t == nil {
			continue
		}

		efficiency := d.fatigue.Efficiency(e.FatigueTicks)
		duration := d.serviceTime.Sample(t.Level, efficiency)

		if err := t.StartService(e.ID, tick, duration); err != nil {
			d.logger.Error("dispatch rejected by ticket", "ticket_id", t.ID, "error", err)
			continue
		}
		if err := e.BeginService(t); err != nil {
			d.logger.Error("dispatch rejected by employee", "employee_id", e.ID, "error", err)
			continue
		}
		d.inService = append(d.inService, t)

		d.logger.Debug("ticket dispatched",
			"tick", tick,
			"ticket_id", t.ID,
			"level", t.Level,
			"employee_id", e.ID,
			"efficiency", efficiency,
			"duration", duration,
		)
	}
}

// Complete resolves every in-service ticket whose duration has elapsed and
// returns them for accounting. Released employees become idle again.
func (d *Dispatcher) Complete(tick int) []*domain.Ticket {
	var resolved []*domain.Ticket
	remaining := d.inService[:0]

	for _, t := range d.inService {
		if t.StartTick+t.Duration > tick {
			remaining = append(remaining, t)
			continue
		}
		if err := t.Resolve(tick); err != nil {
			d.logger.Error("resolution rejected", "ticket_id", t.ID, "error", err)
			remaining = append(remaining, t)
			continue
		}
		d.employeeByID(t.EmployeeID).EndService()
		resolved = append(resolved, t)

		d.logger.Debug("ticket resolved",
			"tick", tick,
			"ticket_id", t.ID,
			"employee_id", t.EmployeeID,
			"duration", t.Duration,
		)
	}

	d.inService = remaining
	return resolved
}

// TickFatigue adds one tick of accumulated work to every serving employee.
// Called once per tick, after completions, so an employee's efficiency at
// assignment reflects only the ticks already worked.
func (d *Dispatcher) TickFatigue() {
	for _, e := range d.employees {
		if !e.Idle() {
			e.FatigueTicks++
		}
	}
}

// InServiceCount returns the number of tickets currently being worked.
func (d *Dispatcher) InServiceCount() int {
	return len(d.inService)
}

func (d *Dispatcher) employeeByID(id int) *domain.Employee {
	for _, e := range d.employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}
