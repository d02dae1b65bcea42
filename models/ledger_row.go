package models

import (
	"strings"
	"time"
)

// SlipStatus is the approval state of a ledger row
type SlipStatus string

const (
	SlipStatusPending  SlipStatus = "Pending"
	SlipStatusApproved SlipStatus = "Approved"
	SlipStatusRejected SlipStatus = "Rejected"
)

// LedgerRow represents one coin-ledger entry. A user accumulates one row
// per slip submission; their balance in a guild is the sum of Coins
// across all of their rows for that guild. Rows are never deleted.
type LedgerRow struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	Username    string     `db:"username"`
	GuildID     string     `db:"guild_id"`
	GuildName   string     `db:"guild_name"`
	Coins       int64      `db:"coins"`
	LastSlipURL string     `db:"last_slip_url"`
	Status      SlipStatus `db:"status"`
	SubmittedAt time.Time  `db:"submitted_at"`
}

// IsPending reports whether the row is still awaiting admin review
func (r *LedgerRow) IsPending() bool {
	return r.Status == SlipStatusPending
}

// NormalizeID trims and stringifies an identifier so lookups tolerate
// type drift from the backing store (numeric cells, stray whitespace)
func NormalizeID(v string) string {
	return strings.TrimSpace(v)
}

// TotalCoins sums the coin values across a set of ledger rows
func TotalCoins(rows []*LedgerRow) int64 {
	var total int64
	for _, row := range rows {
		total += row.Coins
	}
	return total
}
