package service

import (
	"context"
	"fmt"

	"gachabot/models"
)

// SpinResult describes the outcome of a successful gacha spin
type SpinResult struct {
	Reward       string
	SpinNumber   int
	SpinLimit    int
	Remaining    int64
	LimitReached bool
}

// gachaService implements the GachaService interface
type gachaService struct {
	ledger    LedgerService
	counter   CounterService
	entries   []models.RewardEntry
	spinLimit int
}

// NewGachaService creates a new gacha service over the given reward table
func NewGachaService(ledger LedgerService, counter CounterService, entries []models.RewardEntry, spinLimit int) GachaService {
	if spinLimit <= 0 {
		spinLimit = DefaultSpinLimit
	}
	return &gachaService{
		ledger:    ledger,
		counter:   counter,
		entries:   entries,
		spinLimit: spinLimit,
	}
}

// Spin validates the user and guild state, charges one coin, bumps the
// guild counter, and draws a reward. Concurrent spins by the same user
// are not mutually excluded; the backing store offers no transactional
// guarantees, so a near-simultaneous pair can double-spend a coin.
func (s *gachaService) Spin(ctx context.Context, userID, guildID string) (*SpinResult, error) {
	balance, err := s.ledger.GetBalance(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}
	if balance < CoinsPerSpin {
		return nil, ErrInsufficientFunds
	}

	if s.counter.GetCount(guildID) >= s.spinLimit {
		return nil, ErrQuotaExceeded
	}

	if err := s.ledger.Debit(ctx, userID, guildID, CoinsPerSpin); err != nil {
		return nil, fmt.Errorf("failed to charge spin: %w", err)
	}

	spinNumber, err := s.counter.Increment(ctx, guildID)
	if err != nil {
		return nil, err
	}

	reward := RandomReward(s.entries)

	// Re-read the stored balance after the debit rather than computing
	// it locally, so the reply reflects what actually persisted
	remaining, err := s.ledger.GetBalance(ctx, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to read remaining balance: %w", err)
	}

	return &SpinResult{
		Reward:       reward,
		SpinNumber:   spinNumber,
		SpinLimit:    s.spinLimit,
		Remaining:    remaining,
		LimitReached: spinNumber >= s.spinLimit,
	}, nil
}
