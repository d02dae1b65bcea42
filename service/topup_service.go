package service

import (
	"sync"
	"time"

	"gachabot/models"
)

// topUpService implements the TopUpService interface. State is
// process-lifetime only; entries are rebuilt empty on restart.
type topUpService struct {
	ttl time.Duration

	mu      sync.Mutex
	pending map[string]models.PendingTopUp
}

// NewTopUpService creates a new top-up tracker. Entries older than ttl
// are considered abandoned and removed by ExpireStale.
func NewTopUpService(ttl time.Duration) TopUpService {
	return &topUpService{
		ttl:     ttl,
		pending: make(map[string]models.PendingTopUp),
	}
}

// Begin records the pending top-up for a user, overwriting any earlier
// entry so at most one exists per user
func (s *topUpService) Begin(pending models.PendingTopUp) {
	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = time.Now()
	}
	pending.UserID = models.NormalizeID(pending.UserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[pending.UserID] = pending
}

// Get returns the pending top-up for a user without consuming it, so a
// rejected submission (bad amount, missing attachment) can be retried
func (s *topUpService) Get(userID string) (models.PendingTopUp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[models.NormalizeID(userID)]
	return p, ok
}

// Complete removes the user's pending top-up
func (s *topUpService) Complete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, models.NormalizeID(userID))
}

// ExpireStale drops entries older than the TTL
func (s *topUpService) ExpireStale() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, p := range s.pending {
		if p.CreatedAt.Before(cutoff) {
			delete(s.pending, userID)
			removed++
		}
	}
	return removed
}
