package service

import (
	"context"
	"fmt"
	"time"

	"gachabot/models"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	ledgerRepo LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// GetBalance sums coins over all of the user's rows in the guild
func (s *ledgerService) GetBalance(ctx context.Context, userID, guildID string) (int64, error) {
	rows, err := s.rows(ctx, userID, guildID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrNoLedgerEntry
	}
	return models.TotalCoins(rows), nil
}

// Debit deducts amount across the user's rows oldest-first. Each touched
// row is persisted individually; a row is only ever reduced to zero,
// never below.
func (s *ledgerService) Debit(ctx context.Context, userID, guildID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	rows, err := s.rows(ctx, userID, guildID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNoLedgerEntry
	}
	if models.TotalCoins(rows) < amount {
		return ErrInsufficientFunds
	}

	need := amount
	for _, row := range rows {
		if need <= 0 {
			break
		}
		if row.Coins <= 0 {
			continue
		}
		deduct := row.Coins
		if deduct > need {
			deduct = need
		}
		row.Coins -= deduct
		if err := s.ledgerRepo.Update(ctx, row); err != nil {
			return fmt.Errorf("failed to persist debit on row %d: %w", row.ID, err)
		}
		need -= deduct
	}

	return nil
}

// RecordSlip creates a new Pending row with zero coins
func (s *ledgerService) RecordSlip(ctx context.Context, userID, username, guildID, guildName, slipURL string) (*models.LedgerRow, error) {
	row := &models.LedgerRow{
		UserID:      models.NormalizeID(userID),
		Username:    username,
		GuildID:     models.NormalizeID(guildID),
		GuildName:   guildName,
		Coins:       0,
		LastSlipURL: slipURL,
		Status:      models.SlipStatusPending,
		SubmittedAt: time.Now(),
	}

	if err := s.ledgerRepo.Append(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to record slip: %w", err)
	}

	return row, nil
}

// Approve credits floor(amount / ExchangeRate) coins to the most
// recently submitted Pending row and marks it Approved
func (s *ledgerService) Approve(ctx context.Context, userID, guildID string, amount float64) (*models.LedgerRow, error) {
	row, err := s.latestPending(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	row.Coins = int64(amount / ExchangeRate)
	row.Status = models.SlipStatusApproved
	if err := s.ledgerRepo.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}

	return row, nil
}

// Reject marks the most recently submitted Pending row as Rejected
func (s *ledgerService) Reject(ctx context.Context, userID, guildID string) (*models.LedgerRow, error) {
	row, err := s.latestPending(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	row.Status = models.SlipStatusRejected
	if err := s.ledgerRepo.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to persist rejection: %w", err)
	}

	return row, nil
}

func (s *ledgerService) rows(ctx context.Context, userID, guildID string) ([]*models.LedgerRow, error) {
	rows, err := s.ledgerRepo.GetByUserAndGuild(ctx, models.NormalizeID(userID), models.NormalizeID(guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger rows: %w", err)
	}
	return rows, nil
}

// latestPending returns the last Pending row in submission order.
// When several slips are pending, last-submitted wins.
func (s *ledgerService) latestPending(ctx context.Context, userID, guildID string) (*models.LedgerRow, error) {
	rows, err := s.rows(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].IsPending() {
			return rows[i], nil
		}
	}
	return nil, ErrNoPendingSlip
}
