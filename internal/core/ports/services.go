package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
)

// PlanSource loads the three read-only inputs of a run: the employee type
// catalog, the shift roster, and the ticket arrival plan.
type PlanSource interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
	LoadRoster(ctx context.Context) (*domain.Roster, error)
	LoadPlan(ctx context.Context) (*domain.ArrivalPlan, error)
}

// EventBroadcaster pushes real-time events to run subscribers.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}

// StartRunParams defines the input for launching a simulation run.
type StartRunParams struct {
	Tag    string
	Number int
	Seed   int64
	Debug  bool
}

// RunService defines the port for simulation run use cases.
type RunService interface {
	// StartRun registers a run and executes it in the background.
	StartRun(ctx context.Context, params StartRunParams) (*domain.Run, error)

	// ExecuteRun registers a run and executes it synchronously, returning
	// the terminal summary. Used by the one-shot CLI.
	ExecuteRun(ctx context.Context, params StartRunParams) (*domain.Summary, error)

	GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*domain.Summary, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*domain.Run, error)
	ListDatapoints(ctx context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error)
}
