package service

import (
	"context"
	"errors"
	"testing"

	"gachabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterService_Hydrate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCounterRepository)
	svc := NewCounterService(mockRepo)

	mockRepo.On("List", ctx).Return([]*models.GuildCounter{
		{GuildID: "100", SpinCount: 3},
		{GuildID: " 200 ", SpinCount: 1},
	}, nil)

	require.NoError(t, svc.Hydrate(ctx))

	assert.Equal(t, 3, svc.GetCount("100"))
	assert.Equal(t, 1, svc.GetCount("200"), "identifiers are normalized during hydration")
	assert.Equal(t, 0, svc.GetCount("300"), "unknown guilds default to zero")
}

func TestCounterService_Increment_FiveInSequence(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCounterRepository)
	svc := NewCounterService(mockRepo)

	// Each increment upserts the single logical row for the guild with
	// its running total, never an additional row
	for i := 1; i <= 5; i++ {
		mockRepo.On("Upsert", ctx, &models.GuildCounter{GuildID: "100", SpinCount: i}).Return(nil).Once()
	}

	for i := 1; i <= 5; i++ {
		count, err := svc.Increment(ctx, "100")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	assert.Equal(t, 5, svc.GetCount("100"))
	mockRepo.AssertExpectations(t)
}

func TestCounterService_Increment_StoreFailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCounterRepository)
	svc := NewCounterService(mockRepo)

	mockRepo.On("Upsert", ctx, &models.GuildCounter{GuildID: "100", SpinCount: 1}).
		Return(errors.New("store unreachable"))

	_, err := svc.Increment(ctx, "100")

	assert.Error(t, err)
	assert.Equal(t, 0, svc.GetCount("100"), "in-memory count must not run ahead of the store")
}

func TestCounterService_Reset_Idempotent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCounterRepository)
	svc := NewCounterService(mockRepo)

	mockRepo.On("Upsert", ctx, &models.GuildCounter{GuildID: "100", SpinCount: 1}).Return(nil)
	mockRepo.On("Upsert", ctx, &models.GuildCounter{GuildID: "100", SpinCount: 0}).Return(nil).Times(2)

	_, err := svc.Increment(ctx, "100")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "100"))
	assert.Equal(t, 0, svc.GetCount("100"))

	// Resetting an already-zero counter is a no-op on the value
	require.NoError(t, svc.Reset(ctx, "100"))
	assert.Equal(t, 0, svc.GetCount("100"))
	mockRepo.AssertExpectations(t)
}
