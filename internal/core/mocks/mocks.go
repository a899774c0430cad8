package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/lorrc/desk-simulator/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockRunRepository is a mock implementation of ports.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{}
}

func (m *MockRunRepository) Create(ctx context.Context, run *domain.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Update(ctx context.Context, run *domain.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Run), args.Error(1)
}

func (m *MockRunRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*domain.Run, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Run), args.Error(1)
}

func (m *MockRunRepository) SaveSummary(ctx context.Context, summary *domain.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockRunRepository) GetSummary(ctx context.Context, runID uuid.UUID) (*domain.Summary, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

// MockDatapointRepository is a mock implementation of ports.DatapointRepository
type MockDatapointRepository struct {
	mock.Mock
}

func NewMockDatapointRepository() *MockDatapointRepository {
	return &MockDatapointRepository{}
}

func (m *MockDatapointRepository) BulkInsert(ctx context.Context, datapoints []domain.Datapoint) (int64, error) {
	args := m.Called(ctx, datapoints)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDatapointRepository) ListByRunPaginated(ctx context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error) {
	args := m.Called(ctx, runID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Datapoint), args.Error(1)
}

// MockTicketRecordRepository is a mock implementation of ports.TicketRecordRepository
type MockTicketRecordRepository struct {
	mock.Mock
}

func NewMockTicketRecordRepository() *MockTicketRecordRepository {
	return &MockTicketRecordRepository{}
}

func (m *MockTicketRecordRepository) BulkInsert(ctx context.Context, runID uuid.UUID, tickets []*domain.Ticket) (int64, error) {
	args := m.Called(ctx, runID, tickets)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRecordRepository) CountByRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	args := m.Called(ctx, runID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanSource is a mock implementation of ports.PlanSource
type MockPlanSource struct {
	mock.Mock
}

func NewMockPlanSource() *MockPlanSource {
	return &MockPlanSource{}
}

func (m *MockPlanSource) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *MockPlanSource) LoadRoster(ctx context.Context) (*domain.Roster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Roster), args.Error(1)
}

func (m *MockPlanSource) LoadPlan(ctx context.Context) (*domain.ArrivalPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrivalPlan), args.Error(1)
}

// MockRunService is a mock implementation of ports.RunService
type MockRunService struct {
	mock.Mock
}

func NewMockRunService() *MockRunService {
	return &MockRunService{}
}

func (m *MockRunService) StartRun(ctx context.Context, params ports.StartRunParams) (*domain.Run, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Run), args.Error(1)
}

func (m *MockRunService) ExecuteRun(ctx context.Context, params ports.StartRunParams) (*domain.Summary, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockRunService) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Run), args.Error(1)
}

func (m *MockRunService) GetSummary(ctx context.Context, id uuid.UUID) (*domain.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockRunService) ListRuns(ctx context.Context, limit, offset int) ([]*domain.Run, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Run), args.Error(1)
}

func (m *MockRunService) ListDatapoints(ctx context.Context, runID uuid.UUID, limit, offset int) ([]domain.Datapoint, error) {
	args := m.Called(ctx, runID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Datapoint), args.Error(1)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
