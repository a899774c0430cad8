package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

// DatapointRepository is the secondary adapter for datapoint persistence.
// A run can emit tens of thousands of datapoints, so writes go through
// CopyFrom inside a single transaction.
type DatapointRepository struct {
	pool *pgxpool.Pool
	txm  *TransactionManager
}

var _ ports.DatapointRepository = (*DatapointRepository)(nil)

// NewDatapointRepository creates a new datapoint repository.
func NewDatapointRepository(pool *pgxpool.Pool) *DatapointRepository {
	return &DatapointRepository{
		pool: pool,
		txm:  NewTransactionManager(pool),
	}
}

var datapointColumns = []string{
	"run_id", "run_tag", "run_number", "tick",
	"queued_first", "queued_second", "in_service",
	"active_employees", "solved_total", "deployed_total",
}

// BulkInsert writes a run's datapoints in one shot.
func (r *DatapointRepository) BulkInsert(ctx context.Context, datapoints []domain.Datapoint) (int64, error) {
	if len(datapoints) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.txm.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"datapoints"},
			datapointColumns,
			pgx.CopyFromSlice(len(datapoints), func(i int) ([]any, error) {
				dp := datapoints[i]
				return []any{
					dp.RunID, dp.RunTag, dp.RunNumber, dp.Tick,
					dp.QueuedFirst, dp.QueuedSecond, dp.InService,
					dp.ActiveEmployees, dp.SolvedTotal, dp.DeployedTotal,
				}, nil
			}),
		)
		inserted = n
		return err
	})
	return inserted, err
}

// ListByRunPaginated retrieves a run's datapoints in tick order.
func (r *DatapointRepository) ListByRunPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error) {
	const query = `
SELECT run_id, run_tag, run_number, tick,
	queued_first, queued_second, in_service,
	active_employees, solved_total, deployed_total
FROM datapoints
WHERE run_id = $1
ORDER BY tick
LIMIT $2 OFFSET $3
`
	rows, err := r.pool.Query(ctx, query, runID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datapoints []domain.Datapoint
	for rows.Next() {
		var dp domain.Datapoint
		if err := rows.Scan(
			&dp.RunID, &dp.RunTag, &dp.RunNumber, &dp.Tick,
			&dp.QueuedFirst, &dp.QueuedSecond, &dp.InService,
			&dp.ActiveEmployees, &dp.SolvedTotal, &dp.DeployedTotal,
		); err != nil {
			return nil, err
		}
		datapoints = append(datapoints, dp)
	}
	return datapoints, rows.Err()
}
