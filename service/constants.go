package service

import "errors"

const (
	// ExchangeRate is how many currency units buy one coin
	ExchangeRate = 50

	// CoinsPerSpin is the cost of a single gacha draw
	CoinsPerSpin = 1

	// DefaultSpinLimit is the number of spins a guild gets between resets
	DefaultSpinLimit = 5
)

var (
	// ErrNoLedgerEntry indicates the user has no rows in the ledger yet
	ErrNoLedgerEntry = errors.New("no ledger entry for user")

	// ErrInsufficientFunds indicates the user's coin total is too low
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoPendingSlip indicates no Pending row matched an approval action
	ErrNoPendingSlip = errors.New("no pending slip")

	// ErrQuotaExceeded indicates the guild has used all spins this round
	ErrQuotaExceeded = errors.New("spin quota exceeded")
)
