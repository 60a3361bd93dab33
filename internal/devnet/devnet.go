package devnet

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// Devnet bundles the collaborators served by cmd/devnet.
type Devnet struct {
	Ledger  *MemoryLedger
	Keys    *KeyService
	Blobs   store.BlobStorage
	AppInfo service.AppInfoService
}

// New builds the collaborators from cfg. Blobs go to cfg.BlobDir when it
// is set and stay in memory otherwise.
func New(cfg *config.DevnetConfig, clk clock.Clock, log *logger.Logger) (*Devnet, error) {
	ledger := NewMemoryLedger(clk)

	keys, err := NewKeyService(ledger, clk, cfg.KeyServers, cfg.KeyServersOffline)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(*cfg, log)
	if err != nil {
		return nil, err
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	appInfo, err := service.NewAppInfoService(version, log)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("key_servers", keys.Servers()).
		Int("key_servers_offline", cfg.KeyServersOffline).
		Str("blob_dir", cfg.BlobDir).
		Msg("devnet created")

	return &Devnet{Ledger: ledger, Keys: keys, Blobs: storages.Blobs, AppInfo: appInfo}, nil
}

// Adapters exposes the devnet in-process, without HTTP. Published events
// go to publisher, or nowhere when it is nil.
func (d *Devnet) Adapters(publisher adapter.EventPublisher) *adapter.Adapters {
	if publisher == nil {
		publisher = adapter.NewLogPublisher(logger.Nop())
	}
	return &adapter.Adapters{
		Ledger:    d.Ledger,
		Keys:      d.Keys,
		Blobs:     BlobStore{Storage: d.Blobs},
		Publisher: publisher,
	}
}

// BlobStore adapts a [store.BlobStorage] to [adapter.BlobStore], mapping
// storage errors to the ones HTTP clients would see.
type BlobStore struct {
	Storage store.BlobStorage
}

func (b BlobStore) Put(ctx context.Context, ciphertext []byte) (models.BlobRef, error) {
	ref, err := b.Storage.Put(ctx, ciphertext)
	return ref, blobError(err)
}

func (b BlobStore) Get(ctx context.Context, ref models.BlobRef) ([]byte, error) {
	data, err := b.Storage.Get(ctx, ref)
	return data, blobError(err)
}

func blobError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrBlobNotFound):
		return fmt.Errorf("%w: %v", adapter.ErrNotFound, err)
	case errors.Is(err, store.ErrInvalidBlobRef):
		return fmt.Errorf("%w: %v", adapter.ErrBadRequest, err)
	default:
		return err
	}
}
