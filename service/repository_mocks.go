package service

import (
	"context"

	"gachabot/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetByUserAndGuild(ctx context.Context, userID, guildID string) ([]*models.LedgerRow, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerRow), args.Error(1)
}

func (m *MockLedgerRepository) Append(ctx context.Context, row *models.LedgerRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockLedgerRepository) Update(ctx context.Context, row *models.LedgerRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// MockCounterRepository is a mock implementation of CounterRepository
type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) List(ctx context.Context) ([]*models.GuildCounter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GuildCounter), args.Error(1)
}

func (m *MockCounterRepository) Upsert(ctx context.Context, counter *models.GuildCounter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}
