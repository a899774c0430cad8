package services

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/lorrc/desk-simulator/internal/core/ports"
	"github.com/lorrc/desk-simulator/internal/core/sim"
	"github.com/lorrc/desk-simulator/internal/metrics"
)

// RunService implements business logic for simulation run management: it
// loads the plan inputs, drives the engine, and persists everything the
// engine produces.
type RunService struct {
	runRepo       ports.RunRepository
	datapointRepo ports.DatapointRepository
	ticketRepo    ports.TicketRecordRepository
	planSource    ports.PlanSource
	broadcaster   ports.EventBroadcaster
	params        sim.Params
	logger        *slog.Logger
	wg            sync.WaitGroup
}

var _ ports.RunService = (*RunService)(nil)

// NewRunService creates a new run service.
func NewRunService(
	runRepo ports.RunRepository,
	datapointRepo ports.DatapointRepository,
	ticketRepo ports.TicketRecordRepository,
	planSource ports.PlanSource,
	broadcaster ports.EventBroadcaster,
	params sim.Params,
	logger *slog.Logger,
) *RunService {
	return &RunService{
		runRepo:       runRepo,
		datapointRepo: datapointRepo,
		ticketRepo:    ticketRepo,
		planSource:    planSource,
		broadcaster:   broadcaster,
		params:        params,
		logger:        logger.With("component", "run_service"),
	}
}

// StartRun registers a run and executes it in the background. The returned
// record is already persisted in Pending state.
func (s *RunService) StartRun(ctx context.Context, params ports.StartRunParams) (*domain.Run, error) {
	run, err := s.register(ctx, params)
	if err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Detached from the request context: the HTTP request finishes long
		// before the run does.
		s.execute(context.Background(), run, params.Debug)
	}()

	return run, nil
}

// ExecuteRun registers a run and executes it synchronously.
func (s *RunService) ExecuteRun(ctx context.Context, params ports.StartRunParams) (*domain.Summary, error) {
	run, err := s.register(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, run, params.Debug)
}

// register validates the request and persists a pending run record.
func (s *RunService) register(ctx context.Context, params ports.StartRunParams) (*domain.Run, error) {
	if params.Tag == "" {
		return nil, apperrors.ErrTagRequired
	}
	if params.Seed < 0 {
		return nil, apperrors.ErrInvalidSeed
	}

	seed := params.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	run := domain.NewRun(params.Tag, params.Number, seed)
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	metrics.RunsStarted.Inc()
	return run, nil
}

// execute drives one run end to end: load inputs, run the engine, persist
// datapoints, ticket records and the summary, and broadcast progress.
func (s *RunService) execute(ctx context.Context, run *domain.Run, debug bool) (*domain.Summary, error) {
	logger := s.logger.With("run_id", run.ID, "run_tag", run.Tag)

	catalog, roster, plan, err := s.loadInputs(ctx)
	if err != nil {
		return nil, s.fail(ctx, run, logger, err)
	}

	var engineLogger *slog.Logger
	if debug {
		engineLogger = logger
	}

	collector := &datapointCollector{run: run, broadcaster: s.broadcaster}
	manager, err := sim.NewManager(sim.Config{
		Run:      run,
		Params:   s.params,
		Catalog:  catalog,
		Roster:   roster,
		Plan:     plan,
		Observer: collector,
		Logger:   engineLogger,
	})
	if err != nil {
		return nil, s.fail(ctx, run, logger, err)
	}

	now := time.Now().UTC()
	run.Status = domain.RunRunning
	run.StartedAt = &now
	if err := s.runRepo.Update(ctx, run); err != nil {
		return nil, s.fail(ctx, run, logger, err)
	}
	s.broadcast(domain.Event{Type: domain.EventRunStarted, RunID: run.ID, Payload: run})

	started := time.Now()
	summary, err := manager.Run(ctx)
	if err != nil {
		return nil, s.fail(ctx, run, logger, err)
	}
	metrics.RunDuration.Observe(time.Since(started).Seconds())

	if err := s.persistResults(ctx, run, collector.datapoints, manager.Tickets(), summary); err != nil {
		return nil, s.fail(ctx, run, logger, err)
	}

	ended := time.Now().UTC()
	run.Status = domain.RunCompleted
	run.EndedAt = &ended
	if err := s.runRepo.Update(ctx, run); err != nil {
		return nil, s.fail(ctx, run, logger, err)
	}

	metrics.RunsCompleted.Inc()
	metrics.TicketsResolved.Add(float64(summary.Solved))
	metrics.TicketsUnresolved.Add(float64(summary.Unresolved))
	metrics.LastRunExpenses.Set(summary.Expenses)
	metrics.LastRunWorkingHours.Set(summary.WorkingHours)

	s.broadcast(domain.Event{Type: domain.EventRunCompleted, RunID: run.ID, Payload: summary})
	logger.Info("run completed",
		"tickets", summary.TotalTickets,
		"solved", summary.Solved,
		"unresolved", summary.Unresolved,
		"expenses", summary.Expenses,
	)
	return summary, nil
}

func (s *RunService) loadInputs(ctx context.Context) (*domain.Catalog, *domain.Roster, *domain.ArrivalPlan, error) {
	catalog, err := s.planSource.LoadCatalog(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	roster, err := s.planSource.LoadRoster(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	plan, err := s.planSource.LoadPlan(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return catalog, roster, plan, nil
}

func (s *RunService) persistResults(ctx context.Context, run *domain.Run, datapoints []domain.Datapoint, tickets []*domain.Ticket, summary *domain.Summary) error {
	if _, err := s.datapointRepo.BulkInsert(ctx, datapoints); err != nil {
		return err
	}
	if _, err := s.ticketRepo.BulkInsert(ctx, run.ID, tickets); err != nil {
		return err
	}
	return s.runRepo.SaveSummary(ctx, summary)
}

// fail records a failed run and reports the original error.
func (s *RunService) fail(ctx context.Context, run *domain.Run, logger *slog.Logger, err error) error {
	logger.Error("run failed", "error", err)
	metrics.RunsFailed.Inc()

	ended := time.Now().UTC()
	run.Status = domain.RunFailed
	run.EndedAt = &ended
	run.Error = err.Error()
	if updateErr := s.runRepo.Update(ctx, run); updateErr != nil {
		logger.Error("failed to record run failure", "error", updateErr)
	}
	s.broadcast(domain.Event{Type: domain.EventRunFailed, RunID: run.ID, Payload: run.Error})
	return err
}

func (s *RunService) broadcast(event domain.Event) {
	if s.broadcaster == nil {
		return
	}
	_ = s.broadcaster.Broadcast(event)
}

// GetRun retrieves a run record.
func (s *RunService) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	return s.runRepo.GetByID(ctx, id)
}

// GetSummary retrieves the terminal summary of a completed run.
func (s *RunService) GetSummary(ctx context.Context, id uuid.UUID) (*domain.Summary, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.Status != domain.RunCompleted {
		return nil, apperrors.ErrRunNotFinished
	}
	return s.runRepo.GetSummary(ctx, id)
}

// ListRuns retrieves run records, newest first.
func (s *RunService) ListRuns(ctx context.Context, limit, offset int) ([]*domain.Run, error) {
	return s.runRepo.ListPaginated(ctx, limit, offset)
}

// ListDatapoints retrieves a run's persisted datapoints in tick order.
func (s *RunService) ListDatapoints(ctx context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error) {
	if _, err := s.runRepo.GetByID(ctx, runID); err != nil {
		return nil, err
	}
	return s.datapointRepo.ListByRunPaginated(ctx, runID, limit, offset)
}

// Shutdown waits for background runs to finish.
func (s *RunService) Shutdown() {
	s.wg.Wait()
}

// datapointCollector buffers emitted datapoints for the post-run bulk write
// and forwards each one to live subscribers.
type datapointCollector struct {
	run         *domain.Run
	broadcaster ports.EventBroadcaster
	datapoints  []domain.Datapoint
}

var _ sim.Observer = (*datapointCollector)(nil)

func (c *datapointCollector) OnDatapoint(dp domain.Datapoint) {
	c.datapoints = append(c.datapoints, dp)
	if c.broadcaster != nil {
		_ = c.broadcaster.Broadcast(domain.Event{
			Type:    domain.EventDatapoint,
			RunID:   c.run.ID,
			Payload: dp,
		})
	}
}
