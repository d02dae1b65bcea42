package service

import (
	"context"

	"gachabot/models"
)

// LedgerRepository defines the interface for coin-ledger data access.
// Implementations return rows in submission order, oldest first.
type LedgerRepository interface {
	// GetByUserAndGuild retrieves all ledger rows for a user within a guild
	GetByUserAndGuild(ctx context.Context, userID, guildID string) ([]*models.LedgerRow, error)

	// Append adds a new row to the ledger and fills in its ID
	Append(ctx context.Context, row *models.LedgerRow) error

	// Update persists changes to an existing row's coins and status
	Update(ctx context.Context, row *models.LedgerRow) error
}

// CounterRepository defines the interface for the durable spin counter store
type CounterRepository interface {
	// List returns every well-formed counter row in the store
	List(ctx context.Context) ([]*models.GuildCounter, error)

	// Upsert updates the counter row for a guild, inserting it if absent
	Upsert(ctx context.Context, counter *models.GuildCounter) error
}

// LedgerService defines the interface for coin bookkeeping operations
type LedgerService interface {
	// GetBalance sums coins over all of a user's rows in a guild.
	// Returns ErrNoLedgerEntry if the user has no rows at all.
	GetBalance(ctx context.Context, userID, guildID string) (int64, error)

	// Debit deducts amount across the user's rows oldest-first, reducing
	// each row only down to zero. Returns ErrInsufficientFunds if the
	// user's total is below amount.
	Debit(ctx context.Context, userID, guildID string, amount int64) error

	// RecordSlip creates a new Pending row with zero coins for a submitted slip
	RecordSlip(ctx context.Context, userID, username, guildID, guildName, slipURL string) (*models.LedgerRow, error)

	// Approve resolves the most recently submitted Pending row for the
	// user in the guild, crediting floor(amount / ExchangeRate) coins.
	// Returns ErrNoPendingSlip if no Pending row exists.
	Approve(ctx context.Context, userID, guildID string, amount float64) (*models.LedgerRow, error)

	// Reject resolves the most recently submitted Pending row without credit
	Reject(ctx context.Context, userID, guildID string) (*models.LedgerRow, error)
}

// CounterService defines the interface for the per-guild spin counter
type CounterService interface {
	// Hydrate loads the in-memory counts from the durable store.
	// Called once on startup.
	Hydrate(ctx context.Context) error

	// GetCount returns the guild's spin count since its last reset
	GetCount(guildID string) int

	// Increment bumps the guild's spin count, persisting the new value
	// before the in-memory map is updated
	Increment(ctx context.Context, guildID string) (int, error)

	// Reset zeroes the guild's spin count in memory and in the store
	Reset(ctx context.Context, guildID string) error
}

// TopUpService tracks users who pressed the top-up button and are
// expected to DM a payment slip
type TopUpService interface {
	// Begin records (or overwrites) the pending top-up for a user
	Begin(pending models.PendingTopUp)

	// Get returns the pending top-up for a user without consuming it
	Get(userID string) (models.PendingTopUp, bool)

	// Complete removes the user's pending top-up once the slip is processed
	Complete(userID string)

	// ExpireStale drops entries older than the TTL and returns how many
	// were removed. Run periodically for abandoned flows.
	ExpireStale() int
}

// GachaService defines the interface for the spin operation itself
type GachaService interface {
	// Spin charges one coin, bumps the guild counter, and draws a reward.
	// Returns ErrNoLedgerEntry, ErrInsufficientFunds, or ErrQuotaExceeded
	// when the spin cannot proceed.
	Spin(ctx context.Context, userID, guildID string) (*SpinResult, error)
}
