package service

import (
	"context"
	"fmt"
	"sync"

	"gachabot/models"
)

// counterService implements the CounterService interface. The in-memory
// map is the fast path; the durable store is written before the map on
// every mutation so a crash never leaves memory ahead of storage.
type counterService struct {
	counterRepo CounterRepository

	mu     sync.Mutex
	counts map[string]int
}

// NewCounterService creates a new spin counter service
func NewCounterService(counterRepo CounterRepository) CounterService {
	return &counterService{
		counterRepo: counterRepo,
		counts:      make(map[string]int),
	}
}

// Hydrate loads the in-memory counts by scanning the durable store once.
// Malformed rows are skipped by the repository.
func (s *counterService) Hydrate(ctx context.Context) error {
	counters, err := s.counterRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to hydrate spin counters: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range counters {
		s.counts[models.NormalizeID(c.GuildID)] = c.SpinCount
	}
	return nil
}

// GetCount returns the guild's spin count since its last reset
func (s *counterService) GetCount(guildID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[models.NormalizeID(guildID)]
}

// Increment bumps the guild's spin count by one
func (s *counterService) Increment(ctx context.Context, guildID string) (int, error) {
	gid := models.NormalizeID(guildID)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.counts[gid] + 1
	if err := s.counterRepo.Upsert(ctx, &models.GuildCounter{GuildID: gid, SpinCount: next}); err != nil {
		return s.counts[gid], fmt.Errorf("failed to persist spin count for guild %s: %w", gid, err)
	}
	s.counts[gid] = next
	return next, nil
}

// Reset zeroes the guild's spin count. Idempotent.
func (s *counterService) Reset(ctx context.Context, guildID string) error {
	gid := models.NormalizeID(guildID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.counterRepo.Upsert(ctx, &models.GuildCounter{GuildID: gid, SpinCount: 0}); err != nil {
		return fmt.Errorf("failed to reset spin count for guild %s: %w", gid, err)
	}
	s.counts[gid] = 0
	return nil
}
