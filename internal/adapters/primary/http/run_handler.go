package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/adapters/primary/validation"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

const (
	maxRunsPerPage       = 100
	maxDatapointsPerPage = 1000
	maxTagLength         = 64
)

// RunHandler handles HTTP requests for simulation runs
type RunHandler struct {
	runService   ports.RunService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(
	runService ports.RunService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *RunHandler {
	return &RunHandler{
		runService:   runService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "run"),
	}
}

// Router sets up a new chi Router for all run-related routes.
func (h *RunHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all run endpoints.
func (h *RunHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListRuns)
	r.Post("/", h.HandleStartRun)

	// Routes for a specific run
	r.Route("/{runID}", func(r chi.Router) {
		r.Get("/", h.HandleGetRun)
		r.Get("/summary", h.HandleGetSummary)
		r.Get("/datapoints", h.HandleListDatapoints)
	})
}

// --- Request/Response DTOs ---

// StartRunRequest defines the expected JSON body for launching a run
type StartRunRequest struct {
	Tag   string `json:"tag"`
	Seed  int64  `json:"seed"`
	Count int    `json:"count"`
	Debug bool   `json:"debug"`
}

// Validate validates the start run request
func (r *StartRunRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("tag", r.Tag).
		MaxLength("tag", r.Tag, maxTagLength)

	v.Custom("seed", r.Seed >= 0, "Must be non-negative")

	if r.Count != 0 {
		v.Range("count", r.Count, 1, 100)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// RunDTO defines the JSON response for runs.
type RunDTO struct {
	ID        string  `json:"id"`
	Tag       string  `json:"tag"`
	Number    int     `json:"number"`
	Seed      int64   `json:"seed"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
	CreatedAt string  `json:"createdAt"`
	StartedAt *string `json:"startedAt"`
	EndedAt   *string `json:"endedAt"`
}

func toRunDTO(run *domain.Run) RunDTO {
	var startedAt *string
	if run.StartedAt != nil {
		value := run.StartedAt.Format(time.RFC3339)
		startedAt = &value
	}

	var endedAt *string
	if run.EndedAt != nil {
		value := run.EndedAt.Format(time.RFC3339)
		endedAt = &value
	}

	return RunDTO{
		ID:        run.ID.String(),
		Tag:       run.Tag,
		Number:    run.Number,
		Seed:      run.Seed,
		Status:    string(run.Status),
		Error:     run.Error,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}
}

func toRunDTOs(runs []*domain.Run) []RunDTO {
	response := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		response = append(response, toRunDTO(run))
	}
	return response
}

// --- Handlers ---

// HandleStartRun handles POST /runs
func (h *RunHandler) HandleStartRun(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[StartRunRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	count := req.Count
	if count == 0 {
		count = 1
	}

	runs := make([]*domain.Run, 0, count)
	for number := 1; number <= count; number++ {
		run, err := h.runService.StartRun(r.Context(), ports.StartRunParams{
			Tag:    req.Tag,
			Number: number,
			Seed:   req.Seed,
			Debug:  req.Debug,
		})
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		runs = append(runs, run)
	}

	h.logger.Info("runs started",
		"tag", req.Tag,
		"count", count,
	)

	WriteCreated(w, toRunDTOs(runs))
}

// HandleListRuns handles GET /runs
func (h *RunHandler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxRunsPerPage)

	runs, err := h.runService.ListRuns(r.Context(), pagination.Limit+1, pagination.Offset)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePaginatedSimple(w, toRunDTOs(runs), pagination.Limit, pagination.Offset)
}

// HandleGetRun handles GET /runs/{runID}
func (h *RunHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := h.parseRunID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	run, err := h.runService.GetRun(r.Context(), runID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toRunDTO(run))
}

// HandleGetSummary handles GET /runs/{runID}/summary
func (h *RunHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	runID, err := h.parseRunID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	summary, err := h.runService.GetSummary(r.Context(), runID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// HandleListDatapoints handles GET /runs/{runID}/datapoints
func (h *RunHandler) HandleListDatapoints(w http.ResponseWriter, r *http.Request) {
	runID, err := h.parseRunID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	pagination := validation.ParsePagination(r, maxDatapointsPerPage)

	datapoints, err := h.runService.ListDatapoints(r.Context(), runID, pagination.Limit+1, pagination.Offset)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePaginatedSimple(w, datapoints, pagination.Limit, pagination.Offset)
}

// --- Helper methods ---

// parseRunID extracts and validates the run ID from the URL
func (h *RunHandler) parseRunID(r *http.Request) (uuid.UUID, error) {
	runIDStr := chi.URLParam(r, "runID")
	runID, err := uuid.Parse(runIDStr)
	if err != nil {
		v := validation.NewValidator()
		v.Custom("runID", false, "Invalid run ID")
		return uuid.Nil, v.Errors()
	}
	return runID, nil
}
