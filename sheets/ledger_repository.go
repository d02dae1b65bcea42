package sheets

import (
	"context"
	"fmt"
	"time"

	"gachabot/models"
	"gachabot/service"
)

const (
	ledgerSheet = "Ledger"
	// Columns: User, Username, GuildID, GuildName, Coins, LastSlip, Status, Date
	ledgerRange = ledgerSheet + "!A2:H"
)

// LedgerHeaders is the header row for the Ledger worksheet
var LedgerHeaders = []string{"User", "Username", "GuildID", "GuildName", "Coins", "LastSlip", "Status", "Date"}

// LedgerRepository implements service.LedgerRepository over a Google
// Sheets worksheet. The sheet is the system of record; nothing is cached.
type LedgerRepository struct {
	client *Client
}

// NewLedgerRepository creates a sheets-backed ledger repository,
// creating the Ledger worksheet if the spreadsheet lacks one
func NewLedgerRepository(ctx context.Context, client *Client) (*LedgerRepository, error) {
	if err := client.EnsureWorksheet(ctx, ledgerSheet, LedgerHeaders); err != nil {
		return nil, err
	}
	return &LedgerRepository{client: client}, nil
}

var _ service.LedgerRepository = (*LedgerRepository)(nil)

// GetByUserAndGuild retrieves all ledger rows for a user within a guild,
// in sheet order (oldest submission first)
func (r *LedgerRepository) GetByUserAndGuild(ctx context.Context, userID, guildID string) ([]*models.LedgerRow, error) {
	values, err := r.client.getValues(ctx, ledgerRange)
	if err != nil {
		return nil, err
	}

	uid := models.NormalizeID(userID)
	gid := models.NormalizeID(guildID)

	var rows []*models.LedgerRow
	for i, cells := range values {
		row := parseLedgerRow(cells, int64(i+2))
		if row.UserID == uid && row.GuildID == gid {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Append adds a new row to the ledger and records the sheet row number
// it landed on as the row's ID
func (r *LedgerRepository) Append(ctx context.Context, row *models.LedgerRow) error {
	rowNum, err := r.client.appendValues(ctx, ledgerRange, ledgerCells(row))
	if err != nil {
		return err
	}
	row.ID = rowNum
	return nil
}

// Update rewrites the sheet row identified by the row's ID
func (r *LedgerRepository) Update(ctx context.Context, row *models.LedgerRow) error {
	if row.ID < 2 {
		return fmt.Errorf("ledger row has no sheet row number")
	}
	writeRange := fmt.Sprintf("%s!A%d:H%d", ledgerSheet, row.ID, row.ID)
	return r.client.updateValues(ctx, writeRange, ledgerCells(row))
}

func ledgerCells(row *models.LedgerRow) []interface{} {
	return []interface{}{
		row.UserID,
		row.Username,
		row.GuildID,
		row.GuildName,
		row.Coins,
		row.LastSlipURL,
		string(row.Status),
		row.SubmittedAt.Format(time.RFC3339),
	}
}

func parseLedgerRow(cells []interface{}, rowNum int64) *models.LedgerRow {
	coins, _ := cellInt64(cells, 4)
	submittedAt, _ := time.Parse(time.RFC3339, cellString(cells, 7))

	return &models.LedgerRow{
		ID:          rowNum,
		UserID:      cellString(cells, 0),
		Username:    cellString(cells, 1),
		GuildID:     cellString(cells, 2),
		GuildName:   cellString(cells, 3),
		Coins:       coins,
		LastSlipURL: cellString(cells, 5),
		Status:      models.SlipStatus(cellString(cells, 6)),
		SubmittedAt: submittedAt,
	}
}
