package oplog

import (
	"context"
	"sync"
)

// MemoryStore keeps the most recent entries in a fixed-size ring.
// Once the ring is full, each append evicts the oldest entry. Safe for
// concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewMemoryStore creates a ring holding up to capacity entries. A
// capacity of zero or less uses DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{entries: make([]Entry, capacity)}
}

// Append records entry, evicting the oldest one once the ring is full.
func (s *MemoryStore) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.next] = entry
	s.next++
	if s.next == len(s.entries) {
		s.next = 0
		s.full = true
	}
	return nil
}

// Recent returns up to limit entries in reverse append order.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.next
	if s.full {
		size = len(s.entries)
	}
	if limit > size {
		limit = size
	}

	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := s.next - i
		if idx < 0 {
			idx += len(s.entries)
		}
		out = append(out, s.entries[idx])
	}
	return out, nil
}
