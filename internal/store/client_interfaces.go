package store

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// SessionStore caches session keys per (address, scope). Implementations
// return [ErrSessionNotFound] for a miss; expiry is checked by the caller.
type SessionStore interface {
	Get(ctx context.Context, address models.Address, scope string) (models.SessionKey, error)
	Put(ctx context.Context, key models.SessionKey) error
	Delete(ctx context.Context, address models.Address, scope string) error
}

// PairingFilter narrows [PairingRepository.List]. Zero fields match all.
type PairingFilter struct {
	Address      models.Address
	SafeID       models.ObjectID
	OnlyEscrowed bool
	OnlyNew      bool
}

// PairingRepository caches (address, vault) access routes.
type PairingRepository interface {
	Get(ctx context.Context, address models.Address, vaultID models.ObjectID) (models.Pairing, error)
	Save(ctx context.Context, pairing models.Pairing) error
	Delete(ctx context.Context, address models.Address, vaultID models.ObjectID) error
	DeleteBySafe(ctx context.Context, safeID models.ObjectID) error
	List(ctx context.Context, filter PairingFilter) ([]models.Pairing, error)
}

// CursorRepository persists the reconciliation position per event kind.
// A kind never seen reads as cursor zero.
type CursorRepository interface {
	Get(ctx context.Context, kind models.EventKind) (models.Cursor, error)
	Save(ctx context.Context, kind models.EventKind, cursor models.Cursor) error
	All(ctx context.Context) (map[models.EventKind]models.Cursor, error)
}
