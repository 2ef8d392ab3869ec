// Package testutil provides shared test doubles.
package testutil

import (
	"sync"
	"time"

	"github.com/deskhub/deskhub/internal/domain"
)

// Clock is a controllable domain.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock frozen at the given instant.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MemoryBlobStore is an in-memory domain.BlobStore.
type MemoryBlobStore struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	PutErr error // When set, Put fails with this error
}

// NewMemoryBlobStore creates an empty MemoryBlobStore.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

// Get reads the blob stored under key.
func (m *MemoryBlobStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return data, nil
}

// Put replaces the blob stored under key.
func (m *MemoryBlobStore) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.blobs[key] = data
	return nil
}

// Delete removes the blob stored under key.
func (m *MemoryBlobStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Has reports whether a blob exists under key.
func (m *MemoryBlobStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok
}

var _ domain.BlobStore = (*MemoryBlobStore)(nil)
