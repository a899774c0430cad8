package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRun(t *testing.T, repo *RunRepository) *domain.Run {
	t.Helper()
	run := domain.NewRun("integration", 1, 42)
	require.NoError(t, repo.Create(context.Background(), run))
	return run
}

func TestRunRepository_CreateAndGet(t *testing.T) {
	repo := NewRunRepository(testPool)
	run := createTestRun(t, repo)

	fetched, err := repo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, "integration", fetched.Tag)
	assert.Equal(t, int64(42), fetched.Seed)
	assert.Equal(t, domain.RunPending, fetched.Status)
	assert.Nil(t, fetched.StartedAt)
}

func TestRunRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRunRepository(testPool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrRunNotFound)
}

func TestRunRepository_Update(t *testing.T) {
	repo := NewRunRepository(testPool)
	run := createTestRun(t, repo)

	now := time.Now().UTC().Truncate(time.Microsecond)
	run.Status = domain.RunRunning
	run.StartedAt = &now
	require.NoError(t, repo.Update(context.Background(), run))

	fetched, err := repo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunRunning, fetched.Status)
	require.NotNil(t, fetched.StartedAt)
	assert.WithinDuration(t, now, *fetched.StartedAt, time.Millisecond)
}

func TestRunRepository_Update_NotFound(t *testing.T) {
	repo := NewRunRepository(testPool)

	run := domain.NewRun("missing", 1, 7)
	err := repo.Update(context.Background(), run)
	assert.ErrorIs(t, err, apperrors.ErrRunNotFound)
}

func TestRunRepository_Summary(t *testing.T) {
	repo := NewRunRepository(testPool)
	run := createTestRun(t, repo)

	summary := &domain.Summary{
		RunID:              run.ID,
		RunTag:             run.Tag,
		RunNumber:          run.Number,
		Seed:               run.Seed,
		TotalTicks:         2880,
		TotalTickets:       120,
		FirstLevel:         80,
		SecondLevel:        40,
		Solved:             110,
		Deployed:           100,
		Unresolved:         10,
		AvgResolutionTicks: 47.5,
		Expenses:           1234.56,
		WorkingHours:       98.5,
	}
	require.NoError(t, repo.SaveSummary(context.Background(), summary))

	fetched, err := repo.GetSummary(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, fetched)
}

func TestDatapointRepository_BulkInsertAndList(t *testing.T) {
	runRepo := NewRunRepository(testPool)
	repo := NewDatapointRepository(testPool)
	run := createTestRun(t, runRepo)

	datapoints := make([]domain.Datapoint, 100)
	for i := range datapoints {
		datapoints[i] = domain.Datapoint{
			RunID:           run.ID,
			RunTag:          run.Tag,
			RunNumber:       run.Number,
			Tick:            i * 60,
			QueuedFirst:     i % 5,
			QueuedSecond:    i % 3,
			InService:       i % 2,
			ActiveEmployees: 4,
			SolvedTotal:     i,
			DeployedTotal:   i / 2,
		}
	}

	inserted, err := repo.BulkInsert(context.Background(), datapoints)
	require.NoError(t, err)
	assert.Equal(t, int64(100), inserted)

	page, err := repo.ListByRunPaginated(context.Background(), run.ID, 10, 20)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, 20*60, page[0].Tick)
	assert.Equal(t, 29*60, page[9].Tick)
}

func TestDatapointRepository_BulkInsert_Empty(t *testing.T) {
	repo := NewDatapointRepository(testPool)

	inserted, err := repo.BulkInsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestTicketRecordRepository_BulkInsertAndCount(t *testing.T) {
	runRepo := NewRunRepository(testPool)
	repo := NewTicketRecordRepository(testPool)
	run := createTestRun(t, runRepo)

	solved, err := domain.NewTicket(1, 0, domain.LevelFirst)
	require.NoError(t, err)
	require.NoError(t, solved.StartService(3, 5, 30))
	require.NoError(t, solved.Resolve(35))

	queued, err := domain.NewTicket(2, 10, domain.LevelSecond)
	require.NoError(t, err)

	inserted, err := repo.BulkInsert(context.Background(), run.ID, []*domain.Ticket{solved, queued})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	count, err := repo.CountByRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
