// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the client to the collaborators it does not
// implement: the ledger, the threshold key service, the blob store, the
// identity provider and the event sink.
//
// HTTP implementations share one resty client setup and map rejection
// bodies to the sentinel errors in errors.go (and the Safe rule errors in
// package safe) so callers can use [errors.Is] regardless of transport.
package adapter

import (
	"context"
	"crypto/ed25519"

	"github.com/MKhiriev/go-safe-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Ledger is the authoritative store of Vaults, Caps and Safes.
type Ledger interface {
	// Submit applies one signed intent atomically and returns the events it
	// produced, or a rejection error.
	Submit(ctx context.Context, in models.SignedIntent) (models.Confirmation, error)

	// GetObject returns the current snapshot of id, or [ErrNotFound].
	GetObject(ctx context.Context, id models.ObjectID) (models.Object, error)

	// QueryEvents returns events of kind with sequence > cursor, oldest
	// first, at most limit per page.
	QueryEvents(ctx context.Context, kind models.EventKind, cursor models.Cursor, limit int) (models.EventBatch, error)
}

// ThresholdService seals and opens item payloads. Decrypt releases
// plaintext only after verifying the session and approval evidence.
type ThresholdService interface {
	Encrypt(ctx context.Context, req models.EncryptRequest) ([]byte, error)
	Decrypt(ctx context.Context, req models.DecryptRequest) ([]byte, error)
}

// BlobStore keeps ciphertext addressed by content.
type BlobStore interface {
	Put(ctx context.Context, ciphertext []byte) (models.BlobRef, error)
	Get(ctx context.Context, ref models.BlobRef) ([]byte, error)
}

// IdentityProvider holds the user's signing key. RequestSignature may block
// on a human; a refusal is reported as [ErrSignatureDenied].
type IdentityProvider interface {
	Address() models.Address
	PublicKey() ed25519.PublicKey
	RequestSignature(ctx context.Context, req models.SignatureRequest) ([]byte, error)
}

// EventPublisher forwards confirmed events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...models.Event) error
	Close() error
}
