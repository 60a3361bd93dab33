package store

import (
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
)

// Storages groups the devnet's server-side storage.
type Storages struct {
	Blobs BlobStorage
}

// NewStorages keeps blobs on disk when cfg.BlobDir is set, in memory
// otherwise.
func NewStorages(cfg config.DevnetConfig, log *logger.Logger) (*Storages, error) {
	if cfg.BlobDir == "" {
		return &Storages{Blobs: NewMemoryBlobStorage()}, nil
	}

	blobs, err := NewFileBlobStorage(cfg.BlobDir, log)
	if err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error opening blob dir")
		return nil, err
	}
	return &Storages{Blobs: blobs}, nil
}
