package sheets

import (
	"testing"
	"time"

	"gachabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowNumberFromRange(t *testing.T) {
	tests := []struct {
		a1   string
		want int64
	}{
		{"Ledger!A5:H5", 5},
		{"ServerCount!A2:B2", 2},
		{"Ledger!A123:H123", 123},
	}

	for _, tt := range tests {
		got, err := rowNumberFromRange(tt.a1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := rowNumberFromRange("Ledger!A:H")
	assert.Error(t, err)
}

func TestCellHelpers(t *testing.T) {
	row := []interface{}{" 123 ", nil, "abc", "3.0", 7}

	assert.Equal(t, "123", cellString(row, 0))
	assert.Equal(t, "", cellString(row, 1))
	assert.Equal(t, "", cellString(row, 99), "short rows read as empty cells")

	n, ok := cellInt64(row, 0)
	assert.True(t, ok)
	assert.Equal(t, int64(123), n)

	_, ok = cellInt64(row, 2)
	assert.False(t, ok)

	n, ok = cellInt64(row, 3)
	assert.True(t, ok, "float-rendered integers still parse")
	assert.Equal(t, int64(3), n)

	n, ok = cellInt64(row, 4)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)
}

func TestParseLedgerRow(t *testing.T) {
	submitted := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cells := []interface{}{
		" 111 ", "tester", "222", "Test Guild", "3",
		"https://cdn.example/slip.png", "Pending", submitted.Format(time.RFC3339),
	}

	row := parseLedgerRow(cells, 5)

	assert.Equal(t, int64(5), row.ID)
	assert.Equal(t, "111", row.UserID, "identifiers come back trimmed")
	assert.Equal(t, "222", row.GuildID)
	assert.Equal(t, int64(3), row.Coins)
	assert.Equal(t, models.SlipStatusPending, row.Status)
	assert.True(t, row.SubmittedAt.Equal(submitted))
}

func TestParseLedgerRow_MalformedCells(t *testing.T) {
	row := parseLedgerRow([]interface{}{"111", "tester", "222"}, 3)

	assert.Equal(t, int64(0), row.Coins, "missing coin cell reads as zero")
	assert.True(t, row.SubmittedAt.IsZero())
}
