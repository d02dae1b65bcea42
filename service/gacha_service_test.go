package service

import (
	"context"
	"testing"

	"gachabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newGachaFixture wires a gacha service over real ledger/counter
// services backed by mock repositories
func newGachaFixture() (GachaService, *MockLedgerRepository, *MockCounterRepository) {
	mockLedger := new(MockLedgerRepository)
	mockCounter := new(MockCounterRepository)
	svc := NewGachaService(
		NewLedgerService(mockLedger),
		NewCounterService(mockCounter),
		models.DefaultRewards,
		DefaultSpinLimit,
	)
	return svc, mockLedger, mockCounter
}

func TestGachaService_Spin_Success(t *testing.T) {
	ctx := context.Background()
	svc, mockLedger, mockCounter := newGachaFixture()

	rows := ledgerRows(3)
	mockLedger.On("GetByUserAndGuild", ctx, "111", "222").Return(rows, nil)
	mockLedger.On("Update", ctx, rows[0]).Return(nil)
	mockCounter.On("Upsert", ctx, &models.GuildCounter{GuildID: "222", SpinCount: 1}).Return(nil)

	result, err := svc.Spin(ctx, "111", "222")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Reward)
	assert.Equal(t, 1, result.SpinNumber)
	assert.Equal(t, DefaultSpinLimit, result.SpinLimit)
	assert.Equal(t, int64(2), result.Remaining, "remaining balance reflects the persisted debit")
	assert.False(t, result.LimitReached)
	mockLedger.AssertExpectations(t)
	mockCounter.AssertExpectations(t)
}

func TestGachaService_Spin_NoLedgerEntry(t *testing.T) {
	ctx := context.Background()
	svc, mockLedger, mockCounter := newGachaFixture()

	mockLedger.On("GetByUserAndGuild", ctx, "111", "222").Return([]*models.LedgerRow{}, nil)

	_, err := svc.Spin(ctx, "111", "222")

	assert.ErrorIs(t, err, ErrNoLedgerEntry)
	mockLedger.AssertNotCalled(t, "Update")
	mockCounter.AssertNotCalled(t, "Upsert")
}

func TestGachaService_Spin_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc, mockLedger, mockCounter := newGachaFixture()

	mockLedger.On("GetByUserAndGuild", ctx, "111", "222").Return(ledgerRows(0, 0), nil)

	_, err := svc.Spin(ctx, "111", "222")

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	mockLedger.AssertNotCalled(t, "Update")
	mockCounter.AssertNotCalled(t, "Upsert")
}

func TestGachaService_Spin_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	mockLedger := new(MockLedgerRepository)
	mockCounter := new(MockCounterRepository)
	counter := NewCounterService(mockCounter)
	svc := NewGachaService(NewLedgerService(mockLedger), counter, models.DefaultRewards, DefaultSpinLimit)

	mockCounter.On("List", ctx).Return([]*models.GuildCounter{{GuildID: "222", SpinCount: DefaultSpinLimit}}, nil)
	require.NoError(t, counter.Hydrate(ctx))

	mockLedger.On("GetByUserAndGuild", ctx, "111", "222").Return(ledgerRows(3), nil)

	_, err := svc.Spin(ctx, "111", "222")

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	mockLedger.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockCounter.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGachaService_Spin_FinalSpinLocksRound(t *testing.T) {
	ctx := context.Background()
	mockLedger := new(MockLedgerRepository)
	mockCounter := new(MockCounterRepository)
	counter := NewCounterService(mockCounter)
	svc := NewGachaService(NewLedgerService(mockLedger), counter, models.DefaultRewards, DefaultSpinLimit)

	mockCounter.On("List", ctx).Return([]*models.GuildCounter{{GuildID: "222", SpinCount: DefaultSpinLimit - 1}}, nil)
	require.NoError(t, counter.Hydrate(ctx))

	rows := ledgerRows(1)
	mockLedger.On("GetByUserAndGuild", ctx, "111", "222").Return(rows, nil)
	mockLedger.On("Update", ctx, rows[0]).Return(nil)
	mockCounter.On("Upsert", ctx, &models.GuildCounter{GuildID: "222", SpinCount: DefaultSpinLimit}).Return(nil)

	result, err := svc.Spin(ctx, "111", "222")

	require.NoError(t, err)
	assert.Equal(t, DefaultSpinLimit, result.SpinNumber)
	assert.True(t, result.LimitReached)
	assert.Equal(t, int64(0), result.Remaining)
}
