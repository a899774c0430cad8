package planfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lorrc/desk-simulator/internal/adapters/secondary/planfile"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	apperrors "github.com/lorrc/desk-simulator/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlanFiles(t *testing.T, catalog, roster, plan string) *planfile.Source {
	t.Helper()

	dir := t.TempDir()
	paths := map[string]string{
		"catalog.json":  catalog,
		"roster.json":   roster,
		"arrivals.json": plan,
	}
	for name, content := range paths {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return planfile.NewSource(
		filepath.Join(dir, "catalog.json"),
		filepath.Join(dir, "roster.json"),
		filepath.Join(dir, "arrivals.json"),
		1440,
	)
}

const (
	validCatalog = `{
		"types": [
			{"id": "l1", "name": "First Level", "levels": ["FIRST"], "hourlyRate": 20},
			{"id": "l2", "name": "Second Level", "levels": ["SECOND", "FIRST"], "hourlyRate": 35}
		]
	}`
	validRoster = `{
		"shifts": [{"id": 1, "startTick": 480, "endTick": 960}],
		"employees": [
			{"id": 1, "typeId": "l1", "shiftId": 1},
			{"id": 2, "typeId": "l2", "shiftId": 1}
		]
	}`
	validPlan = `{
		"days": 2,
		"arrivals": [
			{"tick": 490, "level": "FIRST"},
			{"tick": 500}
		]
	}`
)

func TestSource_LoadCatalog(t *testing.T) {
	source := writePlanFiles(t, validCatalog, validRoster, validPlan)

	catalog, err := source.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	typ, err := catalog.Get("l2")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelSecond, typ.NativeLevel())
	assert.Equal(t, 35.0, typ.HourlyRate)
}

func TestSource_LoadCatalog_InvalidLevel(t *testing.T) {
	source := writePlanFiles(t, `{"types": [{"id": "l1", "levels": ["THIRD"], "hourlyRate": 20}]}`, validRoster, validPlan)

	_, err := source.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)
}

func TestSource_LoadRoster(t *testing.T) {
	source := writePlanFiles(t, validCatalog, validRoster, validPlan)

	roster, err := source.LoadRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, roster.Shifts, 1)
	assert.Equal(t, 480, roster.Shifts[0].StartTick)
	assert.Len(t, roster.Entries, 2)
}

func TestSource_LoadRoster_ShiftOutsideDay(t *testing.T) {
	source := writePlanFiles(t, validCatalog, `{
		"shifts": [{"id": 1, "startTick": 0, "endTick": 2000}],
		"employees": [{"id": 1, "typeId": "l1", "shiftId": 1}]
	}`, validPlan)

	_, err := source.LoadRoster(context.Background())
	assert.Error(t, err)
}

func TestSource_LoadPlan(t *testing.T) {
	source := writePlanFiles(t, validCatalog, validRoster, validPlan)

	plan, err := source.LoadPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Days)
	require.Len(t, plan.Arrivals, 2)
	assert.Equal(t, domain.LevelFirst, plan.Arrivals[0].Level)

	// Unpinned arrival keeps an empty level for the engine to assign.
	assert.Equal(t, domain.Level(""), plan.Arrivals[1].Level)
}

func TestSource_LoadPlan_ZeroDays(t *testing.T) {
	source := writePlanFiles(t, validCatalog, validRoster, `{"days": 0, "arrivals": []}`)

	_, err := source.LoadPlan(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDayCount)
}

func TestSource_MissingFile(t *testing.T) {
	source := planfile.NewSource("nope/catalog.json", "nope/roster.json", "nope/arrivals.json", 1440)

	_, err := source.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}

func TestSource_MalformedJSON(t *testing.T) {
	source := writePlanFiles(t, `{"types": [`, validRoster, validPlan)

	_, err := source.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrPlanUnreadable)
}
