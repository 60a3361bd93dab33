package store

//go:generate mockgen -source=blob_interfaces.go -destination=../mock/blob_store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// BlobStorage is content-addressed: the reference of a blob is derived
// from its bytes, so storing the same ciphertext twice is a no-op.
type BlobStorage interface {
	Put(ctx context.Context, data []byte) (models.BlobRef, error)
	Get(ctx context.Context, ref models.BlobRef) ([]byte, error)
}
