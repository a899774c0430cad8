package domain_test

import (
	"testing"

	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	catalog, err := domain.NewCatalog([]*domain.EmployeeType{
		{ID: "l1", Name: "First Level", Levels: []domain.Level{domain.LevelFirst}, HourlyRate: 20},
		{ID: "l2", Name: "Second Level", Levels: []domain.Level{domain.LevelSecond, domain.LevelFirst}, HourlyRate: 35},
	})
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name        string
		types       []*domain.EmployeeType
		expectError bool
	}{
		{
			name:        "empty catalog",
			types:       nil,
			expectError: true,
		},
		{
			name: "valid catalog",
			types: []*domain.EmployeeType{
				{ID: "l1", Levels: []domain.Level{domain.LevelFirst}, HourlyRate: 20},
			},
			expectError: false,
		},
		{
			name: "missing id",
			types: []*domain.EmployeeType{
				{Levels: []domain.Level{domain.LevelFirst}, HourlyRate: 20},
			},
			expectError: true,
		},
		{
			name: "no levels",
			types: []*domain.EmployeeType{
				{ID: "l1", HourlyRate: 20},
			},
			expectError: true,
		},
		{
			name: "invalid level",
			types: []*domain.EmployeeType{
				{ID: "l1", Levels: []domain.Level{"THIRD"}, HourlyRate: 20},
			},
			expectError: true,
		},
		{
			name: "non-positive rate",
			types: []*domain.EmployeeType{
				{ID: "l1", Levels: []domain.Level{domain.LevelFirst}, HourlyRate: 0},
			},
			expectError: true,
		},
		{
			name: "duplicate id",
			types: []*domain.EmployeeType{
				{ID: "l1", Levels: []domain.Level{domain.LevelFirst}, HourlyRate: 20},
				{ID: "l1", Levels: []domain.Level{domain.LevelSecond}, HourlyRate: 30},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := domain.NewCatalog(tt.types)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.types), catalog.Len())
		})
	}
}

func TestCatalog_Get(t *testing.T) {
	catalog := testCatalog(t)

	typ, err := catalog.Get("l2")
	require.NoError(t, err)
	assert.Equal(t, "Second Level", typ.Name)

	_, err = catalog.Get("l3")
	assert.ErrorIs(t, err, domain.ErrUnknownEmployeeType)
}

func TestRoster_Validate(t *testing.T) {
	catalog := testCatalog(t)

	shift, err := domain.NewWorkshift(1, 480, 960, 1440)
	require.NoError(t, err)

	t.Run("valid roster", func(t *testing.T) {
		roster := &domain.Roster{
			Shifts: []*domain.Workshift{shift},
			Entries: []domain.RosterEntry{
				{EmployeeID: 1, TypeID: "l1", ShiftID: 1},
				{EmployeeID: 2, TypeID: "l2", ShiftID: 1},
			},
		}
		assert.NoError(t, roster.Validate(catalog))
	})

	t.Run("empty roster", func(t *testing.T) {
		roster := &domain.Roster{}
		assert.ErrorIs(t, roster.Validate(catalog), domain.ErrEmptyRoster)
	})

	t.Run("duplicate employee", func(t *testing.T) {
		roster := &domain.Roster{
			Shifts: []*domain.Workshift{shift},
			Entries: []domain.RosterEntry{
				{EmployeeID: 1, TypeID: "l1", ShiftID: 1},
				{EmployeeID: 1, TypeID: "l2", ShiftID: 1},
			},
		}
		assert.Error(t, roster.Validate(catalog))
	})

	t.Run("unknown type", func(t *testing.T) {
		roster := &domain.Roster{
			Shifts:  []*domain.Workshift{shift},
			Entries: []domain.RosterEntry{{EmployeeID: 1, TypeID: "l9", ShiftID: 1}},
		}
		assert.ErrorIs(t, roster.Validate(catalog), domain.ErrUnknownEmployeeType)
	})

	t.Run("unknown shift", func(t *testing.T) {
		roster := &domain.Roster{
			Shifts:  []*domain.Workshift{shift},
			Entries: []domain.RosterEntry{{EmployeeID: 1, TypeID: "l1", ShiftID: 2}},
		}
		assert.Error(t, roster.Validate(catalog))
	})
}

func TestArrivalPlan_Validate(t *testing.T) {
	t.Run("nil plan", func(t *testing.T) {
		var plan *domain.ArrivalPlan
		assert.ErrorIs(t, plan.Validate(), domain.ErrEmptyPlan)
	})

	t.Run("zero arrivals is legal", func(t *testing.T) {
		plan := &domain.ArrivalPlan{Days: 1}
		assert.NoError(t, plan.Validate())
	})

	t.Run("non-positive day count", func(t *testing.T) {
		plan := &domain.ArrivalPlan{Days: 0}
		assert.ErrorIs(t, plan.Validate(), domain.ErrInvalidDayCount)
	})

	t.Run("negative arrival tick", func(t *testing.T) {
		plan := &domain.ArrivalPlan{Days: 1, Arrivals: []domain.PlannedArrival{{Tick: -1}}}
		assert.Error(t, plan.Validate())
	})

	t.Run("unpinned level is legal", func(t *testing.T) {
		plan := &domain.ArrivalPlan{Days: 1, Arrivals: []domain.PlannedArrival{{Tick: 10}}}
		assert.NoError(t, plan.Validate())
	})

	t.Run("invalid pinned level", func(t *testing.T) {
		plan := &domain.ArrivalPlan{Days: 1, Arrivals: []domain.PlannedArrival{{Tick: 10, Level: "THIRD"}}}
		assert.ErrorIs(t, plan.Validate(), domain.ErrInvalidLevel)
	})
}
