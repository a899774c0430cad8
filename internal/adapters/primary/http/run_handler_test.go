package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mw "github.com/lorrc/desk-simulator/internal/adapters/primary/http/middleware"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/lorrc/desk-simulator/internal/core/mocks"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

type runHandlerFixture struct {
	service *mocks.MockRunService
	router  chi.Router
}

func newRunHandlerFixture(t *testing.T) *runHandlerFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := mocks.NewMockRunService()
	handler := NewRunHandler(service, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	router.Use(mw.RequestID)
	router.Route("/runs", handler.RegisterRoutes)

	return &runHandlerFixture{service: service, router: router}
}

func (f *runHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func completedRun(tag string, number int) *domain.Run {
	run := domain.NewRun(tag, number, 42)
	now := time.Now().UTC()
	run.Status = domain.RunCompleted
	run.StartedAt = &now
	run.EndedAt = &now
	return run
}

func TestRunHandler_StartRun(t *testing.T) {
	t.Run("single run by default", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		run := domain.NewRun("baseline", 1, 7)
		f.service.On("StartRun", mock.Anything, ports.StartRunParams{
			Tag:    "baseline",
			Number: 1,
			Seed:   7,
		}).Return(run, nil).Once()

		recorder := f.do(t, stdhttp.MethodPost, "/runs", StartRunRequest{Tag: "baseline", Seed: 7})

		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var response []RunDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		require.Len(t, response, 1)
		assert.Equal(t, run.ID.String(), response[0].ID)
		assert.Equal(t, "baseline", response[0].Tag)
		assert.Equal(t, int64(7), response[0].Seed)
		assert.Equal(t, string(domain.RunPending), response[0].Status)
		assert.Nil(t, response[0].StartedAt)

		f.service.AssertExpectations(t)
	})

	t.Run("count launches a batch with sequential numbers", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		for number := 1; number <= 3; number++ {
			f.service.On("StartRun", mock.Anything, ports.StartRunParams{
				Tag:    "batch",
				Number: number,
				Seed:   5,
			}).Return(domain.NewRun("batch", number, 5), nil).Once()
		}

		recorder := f.do(t, stdhttp.MethodPost, "/runs", StartRunRequest{Tag: "batch", Seed: 5, Count: 3})

		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var response []RunDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		require.Len(t, response, 3)
		for i, dto := range response {
			assert.Equal(t, i+1, dto.Number)
		}

		f.service.AssertExpectations(t)
	})

	t.Run("missing tag is rejected", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		recorder := f.do(t, stdhttp.MethodPost, "/runs", StartRunRequest{Seed: 1})

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ValidationErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "VALIDATION_ERROR", response.Code)
		assert.Contains(t, response.Fields, "tag")

		f.service.AssertNotCalled(t, "StartRun", mock.Anything, mock.Anything)
	})

	t.Run("negative seed is rejected", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		recorder := f.do(t, stdhttp.MethodPost, "/runs", StartRunRequest{Tag: "x", Seed: -1})

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ValidationErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Contains(t, response.Fields, "seed")
	})

	t.Run("count out of range is rejected", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		recorder := f.do(t, stdhttp.MethodPost, "/runs", StartRunRequest{Tag: "x", Count: 101})

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		req := httptest.NewRequest(stdhttp.MethodPost, "/runs", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		f.router.ServeHTTP(recorder, req)

		assert.True(t, recorder.Code >= 400 && recorder.Code < 500,
			"expected a client error, got %d", recorder.Code)
	})

	t.Run("unreadable plan maps to 422", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		f.service.On("StartRun", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("loading catalog: %w", apperrors.ErrPlanUnreadable)).Once()

		recorder := f.do(t, stdhttp.MethodPost, "/runs", StartRunRequest{Tag: "broken"})

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "INVALID_PLAN", response.Code)
	})
}

func TestRunHandler_ListRuns(t *testing.T) {
	t.Run("returns paginated runs", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runs := []*domain.Run{
			completedRun("batch", 1),
			completedRun("batch", 2),
		}
		f.service.On("ListRuns", mock.Anything, 26, 0).Return(runs, nil).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs", nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var response PaginatedResponse[RunDTO]
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, 25, response.Pagination.Limit)
		assert.False(t, response.Pagination.HasMore)
	})

	t.Run("reports more pages when the overfetch fills", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runs := make([]*domain.Run, 0, 3)
		for i := 1; i <= 3; i++ {
			runs = append(runs, completedRun("batch", i))
		}
		f.service.On("ListRuns", mock.Anything, 3, 2).Return(runs, nil).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs?limit=2&offset=2", nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var response PaginatedResponse[RunDTO]
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, 2, response.Pagination.Offset)
		assert.True(t, response.Pagination.HasMore)
	})

	t.Run("limit is capped", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		f.service.On("ListRuns", mock.Anything, maxRunsPerPage+1, 0).
			Return([]*domain.Run{}, nil).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs?limit=5000", nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		f.service.AssertExpectations(t)
	})
}

func TestRunHandler_GetRun(t *testing.T) {
	t.Run("returns the run", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		run := completedRun("baseline", 1)
		f.service.On("GetRun", mock.Anything, run.ID).Return(run, nil).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs/"+run.ID.String(), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var response RunDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, run.ID.String(), response.ID)
		assert.Equal(t, string(domain.RunCompleted), response.Status)
		require.NotNil(t, response.EndedAt)
	})

	t.Run("unknown run maps to 404", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runID := uuid.New()
		f.service.On("GetRun", mock.Anything, runID).
			Return(nil, apperrors.ErrRunNotFound).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs/"+runID.String(), nil)

		require.Equal(t, stdhttp.StatusNotFound, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "RUN_NOT_FOUND", response.Code)
	})

	t.Run("malformed run ID is rejected", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		recorder := f.do(t, stdhttp.MethodGet, "/runs/not-a-uuid", nil)

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ValidationErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Contains(t, response.Fields, "runID")

		f.service.AssertNotCalled(t, "GetRun", mock.Anything, mock.Anything)
	})
}

func TestRunHandler_GetSummary(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runID := uuid.New()
		summary := &domain.Summary{
			RunID:        runID,
			RunTag:       "baseline",
			RunNumber:    1,
			Seed:         42,
			TotalTicks:   14400,
			TotalTickets: 120,
			Solved:       118,
			Deployed:     115,
			Unresolved:   2,
		}
		f.service.On("GetSummary", mock.Anything, runID).Return(summary, nil).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs/"+runID.String()+"/summary", nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var response domain.Summary
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, summary.RunID, response.RunID)
		assert.Equal(t, 118, response.Solved)
	})

	t.Run("unfinished run maps to 409", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runID := uuid.New()
		f.service.On("GetSummary", mock.Anything, runID).
			Return(nil, apperrors.ErrRunNotFinished).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs/"+runID.String()+"/summary", nil)

		require.Equal(t, stdhttp.StatusConflict, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "RUN_NOT_FINISHED", response.Code)
	})
}

func TestRunHandler_ListDatapoints(t *testing.T) {
	t.Run("returns paginated datapoints", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runID := uuid.New()
		datapoints := []domain.Datapoint{
			{RunID: runID, Tick: 0, SolvedTotal: 0},
			{RunID: runID, Tick: 60, SolvedTotal: 3},
		}
		f.service.On("ListDatapoints", mock.Anything, runID, 51, 0).
			Return(datapoints, nil).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs/"+runID.String()+"/datapoints?limit=50", nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var response PaginatedResponse[domain.Datapoint]
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, 60, response.Data[1].Tick)
		assert.False(t, response.Pagination.HasMore)
	})

	t.Run("unknown run maps to 404", func(t *testing.T) {
		f := newRunHandlerFixture(t)

		runID := uuid.New()
		f.service.On("ListDatapoints", mock.Anything, runID, 26, 0).
			Return(nil, apperrors.ErrRunNotFound).Once()

		recorder := f.do(t, stdhttp.MethodGet, "/runs/"+runID.String()+"/datapoints", nil)

		require.Equal(t, stdhttp.StatusNotFound, recorder.Code)
	})
}
