package domain_test

import (
	"testing"

	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_Valid(t *testing.T) {
	tests := []struct {
		name  string
		level domain.Level
		want  bool
	}{
		{"FIRST is valid", domain.LevelFirst, true},
		{"SECOND is valid", domain.LevelSecond, true},
		{"empty is invalid", domain.Level(""), false},
		{"THIRD is invalid", domain.Level("THIRD"), false},
		{"lowercase is invalid", domain.Level("first"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.Valid())
		})
	}
}

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name        string
		id          int
		arrivalTick int
		level       domain.Level
		expectError bool
	}{
		{"valid first level ticket", 1, 0, domain.LevelFirst, false},
		{"valid second level ticket", 2, 1439, domain.LevelSecond, false},
		{"invalid level", 3, 0, domain.Level("THIRD"), true},
		{"negative arrival tick", 4, -1, domain.LevelFirst, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := domain.NewTicket(tt.id, tt.arrivalTick, tt.level)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, ticket)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, ticket.ID)
			assert.Equal(t, tt.arrivalTick, ticket.ArrivalTick)
			assert.Equal(t, tt.level, ticket.Level)
			assert.Equal(t, domain.TicketQueued, ticket.State)
			assert.False(t, ticket.Started)
		})
	}
}

func TestTicket_Lifecycle(t *testing.T) {
	ticket, err := domain.NewTicket(1, 10, domain.LevelFirst)
	require.NoError(t, err)

	require.NoError(t, ticket.StartService(7, 12, 30))
	assert.Equal(t, domain.TicketInService, ticket.State)
	assert.Equal(t, 7, ticket.EmployeeID)
	assert.Equal(t, 12, ticket.StartTick)
	assert.Equal(t, 30, ticket.Duration)
	assert.True(t, ticket.Started)

	require.NoError(t, ticket.Resolve(42))
	assert.Equal(t, domain.TicketSolved, ticket.State)
	assert.Equal(t, 42, ticket.SolvedTick)
	assert.True(t, ticket.Solved())
	assert.Equal(t, 32, ticket.ResolutionTicks())

	require.NoError(t, ticket.Deploy(1440))
	assert.Equal(t, domain.TicketDeployed, ticket.State)
	assert.Equal(t, 1440, ticket.DeployedTick)
	assert.True(t, ticket.Solved())
}

func TestTicket_StartService_RejectsZeroDuration(t *testing.T) {
	ticket, err := domain.NewTicket(1, 0, domain.LevelFirst)
	require.NoError(t, err)

	err = ticket.StartService(1, 0, 0)
	assert.Error(t, err)
	assert.Equal(t, domain.TicketQueued, ticket.State)
}

func TestTicket_InvalidTransitions(t *testing.T) {
	t.Run("cannot resolve a queued ticket", func(t *testing.T) {
		ticket, err := domain.NewTicket(1, 0, domain.LevelFirst)
		require.NoError(t, err)

		assert.ErrorIs(t, ticket.Resolve(5), domain.ErrTicketNotAssigned)
	})

	t.Run("cannot deploy an unsolved ticket", func(t *testing.T) {
		ticket, err := domain.NewTicket(1, 0, domain.LevelFirst)
		require.NoError(t, err)
		require.NoError(t, ticket.StartService(1, 0, 10))

		assert.ErrorIs(t, ticket.Deploy(10), domain.ErrInvalidStateTransition)
	})

	t.Run("cannot start service twice", func(t *testing.T) {
		ticket, err := domain.NewTicket(1, 0, domain.LevelFirst)
		require.NoError(t, err)
		require.NoError(t, ticket.StartService(1, 0, 10))

		assert.ErrorIs(t, ticket.StartService(2, 1, 10), domain.ErrInvalidStateTransition)
	})
}

func TestTicket_ResolutionTicks_UnresolvedIsZero(t *testing.T) {
	ticket, err := domain.NewTicket(1, 100, domain.LevelSecond)
	require.NoError(t, err)
	assert.Zero(t, ticket.ResolutionTicks())

	require.NoError(t, ticket.StartService(1, 105, 20))
	assert.Zero(t, ticket.ResolutionTicks())
}
