package sim

import "github.com/lorrc/desk-simulator/internal/core/domain"

// TicketQueue keeps one FIFO backlog per difficulty level.
type TicketQueue struct {
	backlogs map[domain.Level][]*domain.Ticket
}

// NewTicketQueue creates empty backlogs for every level.
func NewTicketQueue() *TicketQueue {
	backlogs := make(map[domain.Level][]*domain.Ticket, len(domain.Levels))
	for _, l := range domain.Levels {
		backlogs[l] = nil
	}
	return &TicketQueue{backlogs: backlogs}
}

// Push appends an arrived ticket to its level's backlog.
func (q *TicketQueue) Push(t *domain.Ticket) {
	q.backlogs[t.Level] = append(q.backlogs[t.Level], t)
}

// PopFor removes and returns the oldest ticket the employee is qualified
// for, draining the employee's native level before the other qualified
// tiers. Returns nil when no suitable work is queued.
func (q *TicketQueue) PopFor(e *domain.Employee) *domain.Ticket {
	if t := q.pop(e.Type.NativeLevel()); t != nil {
		return t
	}
	for _, l := range domain.Levels {
		if l == e.Type.NativeLevel() || !e.Type.QualifiedFor(l) {
			continue
		}
		if t := q.pop(l); t != nil {
			return t
		}
	}
	return nil
}

func (q *TicketQueue) pop(level domain.Level) *domain.Ticket {
	backlog := q.backlogs[level]
	if len(backlog) == 0 {
		return nil
	}
	t := backlog[0]
	q.backlogs[level] = backlog[1:]
	return t
}

// Depth returns the backlog size for one level.
func (q *TicketQueue) Depth(level domain.Level) int {
	return len(q.backlogs[level])
}

// Len returns the total queued ticket count.
func (q *TicketQueue) Len() int {
	n := 0
	for _, backlog := range q.backlogs {
		n += len(backlog)
	}
	return n
}
