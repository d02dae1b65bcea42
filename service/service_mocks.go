package service

import (
	"context"

	"gachabot/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService for testing
// the Discord layer without real bookkeeping behind it
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID, guildID string) (int64, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, userID, guildID string, amount int64) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}

func (m *MockLedgerService) RecordSlip(ctx context.Context, userID, username, guildID, guildName, slipURL string) (*models.LedgerRow, error) {
	args := m.Called(ctx, userID, username, guildID, guildName, slipURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerRow), args.Error(1)
}

func (m *MockLedgerService) Approve(ctx context.Context, userID, guildID string, amount float64) (*models.LedgerRow, error) {
	args := m.Called(ctx, userID, guildID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerRow), args.Error(1)
}

func (m *MockLedgerService) Reject(ctx context.Context, userID, guildID string) (*models.LedgerRow, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerRow), args.Error(1)
}
