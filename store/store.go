package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned by Get when no entry exists for a digest.
var ErrNotFound = errors.New("store: report not found")

// Store defines the interface for report caches.
type Store interface {
	// Get returns the encoded report stored under digest, or ErrNotFound.
	Get(ctx context.Context, digest string) ([]byte, error)

	// Put stores an encoded report under digest.
	Put(ctx context.Context, digest string, data []byte) error

	// Delete removes the entry for digest. Deleting a missing entry is not an error.
	Delete(ctx context.Context, digest string) error

	// Digests returns the digests of stored reports in sorted order.
	Digests(ctx context.Context) ([]string, error)

	// Close releases the store's resources.
	Close() error
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore. A ttl of zero keeps entries forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the stored entry.
func (s *MemoryStore) Get(_ context.Context, digest string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[digest]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return nil, ErrNotFound
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

// Put stores a copy of data.
func (s *MemoryStore) Put(_ context.Context, digest string, data []byte) error {
	e := memoryEntry{data: make([]byte, len(data))}
	copy(e.data, data)
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[digest] = e
	return nil
}

// Delete removes the entry for digest.
func (s *MemoryStore) Delete(_ context.Context, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, digest)
	return nil
}

// Digests returns the digests of live entries. Expired entries are dropped.
func (s *MemoryStore) Digests(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	digests := make([]string, 0, len(s.entries))
	for d, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, d)
			continue
		}
		digests = append(digests, d)
	}
	sort.Strings(digests)
	return digests, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}
