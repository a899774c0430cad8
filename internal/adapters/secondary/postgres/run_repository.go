package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

// RunRepository is the secondary adapter for run persistence.
type RunRepository struct {
	pool *pgxpool.Pool
}

var _ ports.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new run repository.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Create persists a new run record.
func (r *RunRepository) Create(ctx context.Context, run *domain.Run) error {
	const query = `
INSERT INTO runs (id, tag, number, seed, status, error, created_at, started_at, ended_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.pool.Exec(ctx, query,
		run.ID, run.Tag, run.Number, run.Seed, string(run.Status), run.Error,
		run.CreatedAt, toTimestamptz(run.StartedAt), toTimestamptz(run.EndedAt),
	)
	return err
}

// Update persists status and timestamp changes to an existing run.
func (r *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	const query = `
UPDATE runs
SET status = $2, error = $3, started_at = $4, ended_at = $5
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		run.ID, string(run.Status), run.Error,
		toTimestamptz(run.StartedAt), toTimestamptz(run.EndedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRunNotFound
	}
	return nil
}

// GetByID retrieves a single run by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	const query = `
SELECT id, tag, number, seed, status, error, created_at, started_at, ended_at
FROM runs
WHERE id = $1
`
	run, err := scanRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// ListPaginated retrieves run records, newest first.
func (r *RunRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*domain.Run, error) {
	const query = `
SELECT id, tag, number, seed, status, error, created_at, started_at, ended_at
FROM runs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveSummary persists the terminal aggregate of a completed run.
func (r *RunRepository) SaveSummary(ctx context.Context, s *domain.Summary) error {
	const query = `
INSERT INTO run_summaries (
	run_id, run_tag, run_number, seed, total_ticks, total_tickets,
	first_level, second_level, solved, deployed, unresolved,
	avg_resolution_ticks, expenses, working_hours
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`
	_, err := r.pool.Exec(ctx, query,
		s.RunID, s.RunTag, s.RunNumber, s.Seed, s.TotalTicks, s.TotalTickets,
		s.FirstLevel, s.SecondLevel, s.Solved, s.Deployed, s.Unresolved,
		s.AvgResolutionTicks, s.Expenses, s.WorkingHours,
	)
	return err
}

// GetSummary retrieves the summary of a completed run.
func (r *RunRepository) GetSummary(ctx context.Context, runID uuid.UUID) (*domain.Summary, error) {
	const query = `
SELECT run_id, run_tag, run_number, seed, total_ticks, total_tickets,
	first_level, second_level, solved, deployed, unresolved,
	avg_resolution_ticks, expenses, working_hours
FROM run_summaries
WHERE run_id = $1
`
	var s domain.Summary
	err := r.pool.QueryRow(ctx, query, runID).Scan(
		&s.RunID, &s.RunTag, &s.RunNumber, &s.Seed, &s.TotalTicks, &s.TotalTickets,
		&s.FirstLevel, &s.SecondLevel, &s.Solved, &s.Deployed, &s.Unresolved,
		&s.AvgResolutionTicks, &s.Expenses, &s.WorkingHours,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRunNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanRun(row pgx.Row) (*domain.Run, error) {
	var (
		run       domain.Run
		status    string
		startedAt pgtype.Timestamptz
		endedAt   pgtype.Timestamptz
	)
	err := row.Scan(&run.ID, &run.Tag, &run.Number, &run.Seed, &status, &run.Error,
		&run.CreatedAt, &startedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	if startedAt.Valid {
		run.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		run.EndedAt = &endedAt.Time
	}
	return &run, nil
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
