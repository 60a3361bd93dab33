// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the client-side cryptography of the vault protocol:
// policy id derivation, session key material, approval evidence encoding,
// payload compression and the passphrase-protected identity keystore.
//
// Nothing here talks to the network. Threshold encryption itself is the key
// service's job; this package only prepares what the key service verifies.
package crypto

import (
	"crypto/ed25519"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService is the injectable face of this package used by services.
type KeyChainService interface {
	// GenerateNonce returns NonceSize random bytes for a new Item.
	GenerateNonce() ([]byte, error)

	// PolicyID derives the per-item policy id. Same inputs, same output.
	PolicyID(vaultID models.ObjectID, nonce []byte) []byte

	// NewSessionKeyPair generates the ephemeral key pair certified by a
	// session challenge.
	NewSessionKeyPair() (ed25519.PublicKey, ed25519.PrivateKey, error)

	// EncodeChallenge deterministically encodes c for signing.
	EncodeChallenge(c models.SessionChallenge) ([]byte, error)

	// BuildApproval encodes tx and computes its digest.
	BuildApproval(tx models.ApprovalTx) (models.ApprovalEvidence, error)

	// SignRequest issues the per-request token binding the session to the
	// approval digest. It expires with the session.
	SignRequest(key models.SessionKey, approvalDigest []byte, now time.Time) (string, error)

	// Compress and Decompress wrap item plaintext around sealing.
	Compress(plaintext []byte) ([]byte, error)
	Decompress(payload []byte) ([]byte, error)

	// GenerateKEK derives the keystore key from a passphrase (Argon2id).
	GenerateKEK(passphrase string, salt []byte) []byte
	// SealKey and OpenKey protect the identity key at rest (AES-256-GCM).
	SealKey(plain, kek []byte) ([]byte, error)
	OpenKey(sealed, kek []byte) ([]byte, error)
}
