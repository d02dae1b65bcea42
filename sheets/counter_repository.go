package sheets

import (
	"context"
	"fmt"

	"gachabot/models"
	"gachabot/service"
)

const (
	counterSheet = "ServerCount"
	counterRange = counterSheet + "!A2:B"
)

// CounterHeaders is the header row for the ServerCount worksheet
var CounterHeaders = []string{"GuildID", "GachaCount"}

// CounterRepository implements service.CounterRepository over the
// ServerCount worksheet
type CounterRepository struct {
	client *Client
}

// NewCounterRepository creates a sheets-backed counter repository,
// creating the ServerCount worksheet if the spreadsheet lacks one
func NewCounterRepository(ctx context.Context, client *Client) (*CounterRepository, error) {
	if err := client.EnsureWorksheet(ctx, counterSheet, CounterHeaders); err != nil {
		return nil, err
	}
	return &CounterRepository{client: client}, nil
}

var _ service.CounterRepository = (*CounterRepository)(nil)

// List returns every well-formed counter row. Rows with an empty or
// header-literal guild ID, or a non-numeric count, are skipped; manual
// edits leave those behind in practice.
func (r *CounterRepository) List(ctx context.Context) ([]*models.GuildCounter, error) {
	values, err := r.client.getValues(ctx, counterRange)
	if err != nil {
		return nil, err
	}

	var counters []*models.GuildCounter
	for _, cells := range values {
		gid := cellString(cells, 0)
		count, ok := cellInt64(cells, 1)
		if gid == "" || gid == "GuildID" || !ok {
			continue
		}
		counters = append(counters, &models.GuildCounter{GuildID: gid, SpinCount: int(count)})
	}
	return counters, nil
}

// Upsert updates the existing row for the guild, appending a new one
// only when no row matches. A guild never grows a second row.
func (r *CounterRepository) Upsert(ctx context.Context, counter *models.GuildCounter) error {
	values, err := r.client.getValues(ctx, counterRange)
	if err != nil {
		return err
	}

	gid := models.NormalizeID(counter.GuildID)
	for i, cells := range values {
		if cellString(cells, 0) == gid {
			writeRange := fmt.Sprintf("%s!A%d:B%d", counterSheet, i+2, i+2)
			return r.client.updateValues(ctx, writeRange, []interface{}{gid, counter.SpinCount})
		}
	}

	_, err = r.client.appendValues(ctx, counterRange, []interface{}{gid, counter.SpinCount})
	return err
}
