// Package planfile loads the three run inputs from JSON files: the employee
// type catalog, the shift roster, and the ticket arrival plan.
package planfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

// Source reads plan files from disk. Files are read once per load, never
// cached: a new run picks up edits.
type Source struct {
	catalogPath string
	rosterPath  string
	planPath    string
	dayLength   int
}

var _ ports.PlanSource = (*Source)(nil)

// NewSource creates a plan source over the three file paths. The day length
// is needed to validate shift windows at load time.
func NewSource(catalogPath, rosterPath, planPath string, dayLength int) *Source {
	return &Source{
		catalogPath: catalogPath,
		rosterPath:  rosterPath,
		planPath:    planPath,
		dayLength:   dayLength,
	}
}

type catalogFile struct {
	Types []struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Levels     []string `json:"levels"`
		HourlyRate float64  `json:"hourlyRate"`
	} `json:"types"`
}

type rosterFile struct {
	Shifts []struct {
		ID        int `json:"id"`
		StartTick int `json:"startTick"`
		EndTick   int `json:"endTick"`
	} `json:"shifts"`
	Employees []struct {
		ID      int    `json:"id"`
		TypeID  string `json:"typeId"`
		ShiftID int    `json:"shiftId"`
	} `json:"employees"`
}

type planFile struct {
	Days     int `json:"days"`
	Arrivals []struct {
		Tick  int    `json:"tick"`
		Level string `json:"level,omitempty"`
	} `json:"arrivals"`
}

// LoadCatalog reads and validates the employee type catalog.
func (s *Source) LoadCatalog(_ context.Context) (*domain.Catalog, error) {
	var file catalogFile
	if err := readJSON(s.catalogPath, &file); err != nil {
		return nil, err
	}

	types := make([]*domain.EmployeeType, 0, len(file.Types))
	for _, t := range file.Types {
		levels := make([]domain.Level, len(t.Levels))
		for i, l := range t.Levels {
			levels[i] = domain.Level(l)
		}
		types = append(types, &domain.EmployeeType{
			ID:         t.ID,
			Name:       t.Name,
			Levels:     levels,
			HourlyRate: t.HourlyRate,
		})
	}
	return domain.NewCatalog(types)
}

// LoadRoster reads and structurally validates the shift roster. Full
// validation against the catalog happens at engine construction.
func (s *Source) LoadRoster(_ context.Context) (*domain.Roster, error) {
	var file rosterFile
	if err := readJSON(s.rosterPath, &file); err != nil {
		return nil, err
	}

	shifts := make([]*domain.Workshift, 0, len(file.Shifts))
	for _, sh := range file.Shifts {
		shift, err := domain.NewWorkshift(sh.ID, sh.StartTick, sh.EndTick, s.dayLength)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.rosterPath, err)
		}
		shifts = append(shifts, shift)
	}

	entries := make([]domain.RosterEntry, 0, len(file.Employees))
	for _, e := range file.Employees {
		entries = append(entries, domain.RosterEntry{
			EmployeeID: e.ID,
			TypeID:     e.TypeID,
			ShiftID:    e.ShiftID,
		})
	}
	return &domain.Roster{Shifts: shifts, Entries: entries}, nil
}

// LoadPlan reads and validates the ticket arrival plan.
func (s *Source) LoadPlan(_ context.Context) (*domain.ArrivalPlan, error) {
	var file planFile
	if err := readJSON(s.planPath, &file); err != nil {
		return nil, err
	}

	arrivals := make([]domain.PlannedArrival, 0, len(file.Arrivals))
	for _, a := range file.Arrivals {
		arrivals = append(arrivals, domain.PlannedArrival{
			Tick:  a.Tick,
			Level: domain.Level(a.Level),
		})
	}

	plan := &domain.ArrivalPlan{Days: file.Days, Arrivals: arrivals}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.planPath, err)
	}
	return plan, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", apperrors.ErrPlanNotFound, path)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrPlanUnreadable, path, err)
	}
	return nil
}
