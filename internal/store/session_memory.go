package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
)

type sessionKeyID struct {
	address models.Address
	scope   string
}

// MemorySessionStore keeps session keys for the life of the process.
// Expired keys are dropped on access.
type MemorySessionStore struct {
	mu   sync.Mutex
	keys map[sessionKeyID]models.SessionKey
	now  func() time.Time
}

// NewMemorySessionStore returns an empty [MemorySessionStore].
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{keys: map[sessionKeyID]models.SessionKey{}, now: time.Now}
}

// WithClock makes expiry follow now instead of the wall clock.
func (m *MemorySessionStore) WithClock(now func() time.Time) *MemorySessionStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

func (m *MemorySessionStore) Get(ctx context.Context, address models.Address, scope string) (models.SessionKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked()

	key, ok := m.keys[sessionKeyID{address, scope}]
	if !ok {
		return models.SessionKey{}, ErrSessionNotFound
	}
	return key, nil
}

func (m *MemorySessionStore) Put(ctx context.Context, key models.SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[sessionKeyID{key.Address, key.Scope}] = key
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, address models.Address, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, sessionKeyID{address, scope})
	return nil
}

func (m *MemorySessionStore) cleanupLocked() {
	now := m.now()
	for id, key := range m.keys {
		if !now.Before(key.ExpiresAt()) {
			delete(m.keys, id)
		}
	}
}
