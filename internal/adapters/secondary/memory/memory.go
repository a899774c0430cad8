// Package memory provides in-memory implementations of the persistence
// ports, used by the one-shot CLI when no database is configured and by
// service-level tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

// RunRepository keeps run records in process memory.
type RunRepository struct {
	mu        sync.RWMutex
	runs      map[uuid.UUID]*domain.Run
	summaries map[uuid.UUID]*domain.Summary
	order     []uuid.UUID
}

var _ ports.RunRepository = (*RunRepository)(nil)

func NewRunRepository() *RunRepository {
	return &RunRepository{
		runs:      make(map[uuid.UUID]*domain.Run),
		summaries: make(map[uuid.UUID]*domain.Summary),
	}
}

func (r *RunRepository) Create(_ context.Context, run *domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *run
	r.runs[run.ID] = &copied
	r.order = append(r.order, run.ID)
	return nil
}

func (r *RunRepository) Update(_ context.Context, run *domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return apperrors.ErrRunNotFound
	}
	copied := *run
	r.runs[run.ID] = &copied
	return nil
}

func (r *RunRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, apperrors.ErrRunNotFound
	}
	copied := *run
	return &copied, nil
}

func (r *RunRepository) ListPaginated(_ context.Context, limit, offset int) ([]*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first, matching the SQL adapter.
	ids := make([]uuid.UUID, len(r.order))
	copy(ids, r.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return r.runs[ids[i]].CreatedAt.After(r.runs[ids[j]].CreatedAt)
	})

	if offset >= len(ids) {
		return nil, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	out := make([]*domain.Run, 0, end-offset)
	for _, id := range ids[offset:end] {
		copied := *r.runs[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *RunRepository) SaveSummary(_ context.Context, summary *domain.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *summary
	r.summaries[summary.RunID] = &copied
	return nil
}

func (r *RunRepository) GetSummary(_ context.Context, runID uuid.UUID) (*domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.summaries[runID]
	if !ok {
		return nil, apperrors.ErrRunNotFound
	}
	copied := *summary
	return &copied, nil
}

// DatapointRepository keeps emitted datapoints in process memory.
type DatapointRepository struct {
	mu     sync.RWMutex
	points map[uuid.UUID][]domain.Datapoint
}

var _ ports.DatapointRepository = (*DatapointRepository)(nil)

func NewDatapointRepository() *DatapointRepository {
	return &DatapointRepository{points: make(map[uuid.UUID][]domain.Datapoint)}
}

func (r *DatapointRepository) BulkInsert(_ context.Context, datapoints []domain.Datapoint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dp := range datapoints {
		r.points[dp.RunID] = append(r.points[dp.RunID], dp)
	}
	return int64(len(datapoints)), nil
}

func (r *DatapointRepository) ListByRunPaginated(_ context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	points := r.points[runID]
	if offset >= len(points) {
		return nil, nil
	}
	end := offset + limit
	if end > len(points) {
		end = len(points)
	}
	out := make([]domain.Datapoint, end-offset)
	copy(out, points[offset:end])
	return out, nil
}

// TicketRecordRepository keeps finished ticket records in process memory.
type TicketRecordRepository struct {
	mu      sync.RWMutex
	tickets map[uuid.UUID][]*domain.Ticket
}

var _ ports.TicketRecordRepository = (*TicketRecordRepository)(nil)

func NewTicketRecordRepository() *TicketRecordRepository {
	return &TicketRecordRepository{tickets: make(map[uuid.UUID][]*domain.Ticket)}
}

func (r *TicketRecordRepository) BulkInsert(_ context.Context, runID uuid.UUID, tickets []*domain.Ticket) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tickets {
		copied := *t
		r.tickets[runID] = append(r.tickets[runID], &copied)
	}
	return int64(len(tickets)), nil
}

func (r *TicketRecordRepository) CountByRun(_ context.Context, runID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.tickets[runID])), nil
}
