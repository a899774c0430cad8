package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
)

// RunRepository persists run records and their terminal summaries.
type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) error
	Update(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]*domain.Run, error)
	SaveSummary(ctx context.Context, summary *domain.Summary) error
	GetSummary(ctx context.Context, runID uuid.UUID) (*domain.Summary, error)
}

// DatapointRepository persists the operational snapshots a run emits.
// Writes happen in bulk, once per run, never from inside the engine.
type DatapointRepository interface {
	BulkInsert(ctx context.Context, datapoints []domain.Datapoint) (int64, error)
	ListByRunPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error)
}

// TicketRecordRepository persists the finished ticket record set of a run.
type TicketRecordRepository interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, tickets []*domain.Ticket) (int64, error)
	CountByRun(ctx context.Context, runID uuid.UUID) (int64, error)
}
