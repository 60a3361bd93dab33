package store

import (
	"bytes"
	"context"
	"sync"

	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// MemoryBlobStorage holds blobs in a map.
type MemoryBlobStorage struct {
	mu    sync.RWMutex
	blobs map[models.BlobRef][]byte
}

// NewMemoryBlobStorage returns an empty [MemoryBlobStorage].
func NewMemoryBlobStorage() *MemoryBlobStorage {
	return &MemoryBlobStorage{blobs: map[models.BlobRef][]byte{}}
}

func (m *MemoryBlobStorage) Put(ctx context.Context, data []byte) (models.BlobRef, error) {
	ref := crypto.BlobRefFor(data)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[ref]; !ok {
		m.blobs[ref] = bytes.Clone(data)
	}
	return ref, nil
}

func (m *MemoryBlobStorage) Get(ctx context.Context, ref models.BlobRef) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[ref]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return bytes.Clone(data), nil
}
