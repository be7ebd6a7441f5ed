package revocation

import (
	"context"
	"sync"
	"time"

	"citizengw/pkg/domain"
)

type memoryEntry struct {
	fiscalCode domain.FiscalCode
	expiresAt  time.Time
}

// MemoryStore is an in-memory Store for unit tests and single-instance
// development wiring. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.SupportToken]memoryEntry
	clock   Clock
}

// MemoryStoreOption configures a MemoryStore instance.
type MemoryStoreOption func(*MemoryStore)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) MemoryStoreOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemoryStore constructs an in-memory revocation list.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[domain.SupportToken]memoryEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Revoke(_ context.Context, token domain.SupportToken, fiscalCode domain.FiscalCode, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{
		fiscalCode: fiscalCode,
		expiresAt:  s.clock().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token domain.SupportToken) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !s.clock().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
