package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

// TicketRecordRepository is the secondary adapter for a run's finished
// ticket record set.
type TicketRecordRepository struct {
	pool *pgxpool.Pool
	txm  *TransactionManager
}

var _ ports.TicketRecordRepository = (*TicketRecordRepository)(nil)

// NewTicketRecordRepository creates a new ticket record repository.
func NewTicketRecordRepository(pool *pgxpool.Pool) *TicketRecordRepository {
	return &TicketRecordRepository{
		pool: pool,
		txm:  NewTransactionManager(pool),
	}
}

var ticketRecordColumns = []string{
	"run_id", "ticket_id", "arrival_tick", "level", "state",
	"employee_id", "started", "start_tick", "duration",
	"solved_tick", "deployed_tick",
}

// BulkInsert writes the full ticket record set of a run.
func (r *TicketRecordRepository) BulkInsert(ctx context.Context, runID uuid.UUID, tickets []*domain.Ticket) (int64, error) {
	if len(tickets) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.txm.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"ticket_records"},
			ticketRecordColumns,
			pgx.CopyFromSlice(len(tickets), func(i int) ([]any, error) {
				t := tickets[i]
				return []any{
					runID, t.ID, t.ArrivalTick, string(t.Level), string(t.State),
					t.EmployeeID, t.Started, t.StartTick, t.Duration,
					t.SolvedTick, t.DeployedTick,
				}, nil
			}),
		)
		inserted = n
		return err
	})
	return inserted, err
}

// CountByRun returns the number of persisted ticket records for a run.
func (r *TicketRecordRepository) CountByRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM ticket_records WHERE run_id = $1`
	var count int64
	err := r.pool.QueryRow(ctx, query, runID).Scan(&count)
	return count, err
}
