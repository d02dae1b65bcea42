package repository

import (
	"context"
	"fmt"

	"gachabot/database"
	"gachabot/models"
	"gachabot/service"
)

// LedgerRepository implements service.LedgerRepository on Postgres
type LedgerRepository struct {
	db *database.DB
}

// NewLedgerRepository creates a new postgres-backed ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ service.LedgerRepository = (*LedgerRepository)(nil)

// GetByUserAndGuild retrieves all ledger rows for a user within a guild,
// oldest submission first
func (r *LedgerRepository) GetByUserAndGuild(ctx context.Context, userID, guildID string) ([]*models.LedgerRow, error) {
	query := `
		SELECT id, user_id, username, guild_id, guild_name, coins, last_slip_url, status, submitted_at
		FROM ledger_rows
		WHERE user_id = $1 AND guild_id = $2
		ORDER BY id
	`

	pgxRows, err := r.db.Query(ctx, query, models.NormalizeID(userID), models.NormalizeID(guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows for user %s in guild %s: %w", userID, guildID, err)
	}
	defer pgxRows.Close()

	var rows []*models.LedgerRow
	for pgxRows.Next() {
		var row models.LedgerRow
		if err := pgxRows.Scan(
			&row.ID,
			&row.UserID,
			&row.Username,
			&row.GuildID,
			&row.GuildName,
			&row.Coins,
			&row.LastSlipURL,
			&row.Status,
			&row.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		rows = append(rows, &row)
	}

	return rows, pgxRows.Err()
}

// Append adds a new row to the ledger and fills in its generated ID
func (r *LedgerRepository) Append(ctx context.Context, row *models.LedgerRow) error {
	query := `
		INSERT INTO ledger_rows (user_id, username, guild_id, guild_name, coins, last_slip_url, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		models.NormalizeID(row.UserID),
		row.Username,
		models.NormalizeID(row.GuildID),
		row.GuildName,
		row.Coins,
		row.LastSlipURL,
		row.Status,
		row.SubmittedAt,
	).Scan(&row.ID)
	if err != nil {
		return fmt.Errorf("failed to append ledger row for user %s: %w", row.UserID, err)
	}

	return nil
}

// Update persists the row's coins and status
func (r *LedgerRepository) Update(ctx context.Context, row *models.LedgerRow) error {
	query := `
		UPDATE ledger_rows
		SET coins = $1, status = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, row.Coins, row.Status, row.ID)
	if err != nil {
		return fmt.Errorf("failed to update ledger row %d: %w", row.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ledger row %d not found", row.ID)
	}

	return nil
}
