package repository

import (
	"context"
	"fmt"

	"gachabot/database"
	"gachabot/models"
	"gachabot/service"
)

// CounterRepository implements service.CounterRepository on Postgres
type CounterRepository struct {
	db *database.DB
}

// NewCounterRepository creates a new postgres-backed counter repository
func NewCounterRepository(db *database.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

var _ service.CounterRepository = (*CounterRepository)(nil)

// List returns every counter row
func (r *CounterRepository) List(ctx context.Context) ([]*models.GuildCounter, error) {
	query := `SELECT guild_id, spin_count FROM guild_counters`

	pgxRows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query guild counters: %w", err)
	}
	defer pgxRows.Close()

	var counters []*models.GuildCounter
	for pgxRows.Next() {
		var counter models.GuildCounter
		if err := pgxRows.Scan(&counter.GuildID, &counter.SpinCount); err != nil {
			return nil, fmt.Errorf("failed to scan guild counter: %w", err)
		}
		counters = append(counters, &counter)
	}

	return counters, pgxRows.Err()
}

// Upsert inserts or updates the single counter row for a guild
func (r *CounterRepository) Upsert(ctx context.Context, counter *models.GuildCounter) error {
	query := `
		INSERT INTO guild_counters (guild_id, spin_count)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET spin_count = EXCLUDED.spin_count
	`

	_, err := r.db.Exec(ctx, query, models.NormalizeID(counter.GuildID), counter.SpinCount)
	if err != nil {
		return fmt.Errorf("failed to upsert counter for guild %s: %w", counter.GuildID, err)
	}

	return nil
}
