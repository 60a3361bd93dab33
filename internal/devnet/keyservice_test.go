// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devnet

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyChain = crypto.NewKeyChainService()

// newSession mints a session key for a, as the session manager would.
func newSession(t *testing.T, a actor, now time.Time, ttl time.Duration) models.SessionKey {
	t.Helper()
	sPub, sPriv, err := keyChain.NewSessionKeyPair()
	require.NoError(t, err)

	challenge, err := keyChain.EncodeChallenge(models.SessionChallenge{
		Scope:         "vault-access",
		Address:       a.addr,
		SessionPublic: sPub,
		CreatedAtMs:   now.UnixMilli(),
		TTLMs:         ttl.Milliseconds(),
	})
	require.NoError(t, err)

	return models.SessionKey{
		Address:         a.addr,
		Scope:           "vault-access",
		CreatedAt:       now,
		TTL:             ttl,
		Challenge:       challenge,
		SignedChallenge: ed25519.Sign(a.priv, challenge),
		IdentityKey:     a.pub,
		SessionPublic:   sPub,
		SessionPrivate:  sPriv,
	}
}

// decryptRequest builds a request carrying session and approval evidence.
func decryptRequest(t *testing.T, key models.SessionKey, tx models.ApprovalTx, ciphertext []byte, now time.Time) models.DecryptRequest {
	t.Helper()
	approval, err := keyChain.BuildApproval(tx)
	require.NoError(t, err)
	token, err := keyChain.SignRequest(key, approval.Digest, now)
	require.NoError(t, err)

	return models.DecryptRequest{
		Ciphertext: ciphertext,
		Session: models.SessionEvidence{
			Address:         key.Address,
			Scope:           key.Scope,
			CreatedAt:       key.CreatedAt,
			TTL:             key.TTL,
			Challenge:       key.Challenge,
			SignedChallenge: key.SignedChallenge,
			IdentityKey:     key.IdentityKey,
			SessionPublic:   key.SessionPublic,
			RequestToken:    token,
		},
		Approval: approval,
	}
}

// sealedFixture is a vault with one item sealed by the key service.
type sealedFixture struct {
	ledger *MemoryLedger
	keys   *KeyService
	clock  *clock.FakeClock
	owner  actor
	tx     models.ApprovalTx
	sealed []byte
}

func newSealedFixture(t *testing.T, servers, threshold int) sealedFixture {
	t.Helper()
	l, clk := newTestLedger()
	ks, err := NewKeyService(l, clk, servers, 0)
	require.NoError(t, err)

	owner := newActor(t)
	vaultID, capID := owner.createVault(t, l, "family")
	nonce := []byte("nonce-1")
	itemID := owner.addItem(t, l, vaultID, capID, nonce)
	policy := crypto.DerivePolicyID(vaultID, nonce)

	sealed, err := ks.Encrypt(context.Background(), models.EncryptRequest{
		PolicyID:  policy,
		Plaintext: []byte("hunter2"),
		Threshold: threshold,
	})
	require.NoError(t, err)

	return sealedFixture{
		ledger: l,
		keys:   ks,
		clock:  clk,
		owner:  owner,
		sealed: sealed,
		tx: models.ApprovalTx{
			Function: models.ApproveFunction,
			PolicyID: policy,
			Sender:   owner.addr,
			VaultID:  vaultID,
			ItemID:   itemID,
			CapID:    capID,
		},
	}
}

// ── NewKeyService ────────────────────────────────────────────────────────────

func TestNewKeyService(t *testing.T) {
	_, err := NewKeyService(nil, clock.Real(), 0, 0)
	assert.ErrorIs(t, err, ErrNoKeyServers)

	ks, err := NewKeyService(nil, clock.Real(), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, ks.Servers())
	assert.Equal(t, 3, ks.offline)

	ks.SetOffline(-1)
	assert.Equal(t, 0, ks.offline)
}

// ── Encrypt ──────────────────────────────────────────────────────────────────

func TestEncrypt_Validation(t *testing.T) {
	ks, err := NewKeyService(nil, clock.Real(), 3, 0)
	require.NoError(t, err)
	policy := crypto.DerivePolicyID(models.MustObjectID("0x7a"), []byte("n"))

	tests := []struct {
		name string
		req  models.EncryptRequest
	}{
		{"short policy id", models.EncryptRequest{PolicyID: []byte("short"), Threshold: 1}},
		{"zero threshold", models.EncryptRequest{PolicyID: policy, Threshold: 0}},
		{"threshold above committee", models.EncryptRequest{PolicyID: policy, Threshold: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ks.Encrypt(context.Background(), tt.req)
			assert.ErrorIs(t, err, adapter.ErrBadRequest)
		})
	}
}

// ── Decrypt ──────────────────────────────────────────────────────────────────

func TestDecrypt_RoundTrip(t *testing.T) {
	f := newSealedFixture(t, 3, 2)
	now := f.clock.Now()
	key := newSession(t, f.owner, now, 10*time.Minute)

	plaintext, err := f.keys.Decrypt(context.Background(), decryptRequest(t, key, f.tx, f.sealed, now))

	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), plaintext)
}

func TestDecrypt_ThresholdNotMet(t *testing.T) {
	f := newSealedFixture(t, 3, 2)
	now := f.clock.Now()
	req := decryptRequest(t, newSession(t, f.owner, now, 10*time.Minute), f.tx, f.sealed, now)

	f.keys.SetOffline(1)
	_, err := f.keys.Decrypt(context.Background(), req)
	require.NoError(t, err, "two of three servers still answer")

	f.keys.SetOffline(2)
	_, err = f.keys.Decrypt(context.Background(), req)
	assert.ErrorIs(t, err, adapter.ErrThresholdNotMet)

	f.keys.SetOffline(3)
	_, err = f.keys.Decrypt(context.Background(), req)
	assert.ErrorIs(t, err, adapter.ErrThresholdNotMet)
}

func TestDecrypt_InvalidFormat(t *testing.T) {
	f := newSealedFixture(t, 1, 1)
	now := f.clock.Now()
	key := newSession(t, f.owner, now, 10*time.Minute)

	_, err := f.keys.Decrypt(context.Background(), decryptRequest(t, key, f.tx, []byte("garbage"), now))

	assert.ErrorIs(t, err, adapter.ErrInvalidFormat)
}

func TestDecrypt_SealedForAnotherCommittee(t *testing.T) {
	f := newSealedFixture(t, 2, 1)
	other, err := NewKeyService(f.ledger, f.clock, 2, 0)
	require.NoError(t, err)
	now := f.clock.Now()
	key := newSession(t, f.owner, now, 10*time.Minute)

	_, err = other.Decrypt(context.Background(), decryptRequest(t, key, f.tx, f.sealed, now))

	assert.ErrorIs(t, err, adapter.ErrInvalidFormat)
}

func TestDecrypt_EvidenceRejected(t *testing.T) {
	f := newSealedFixture(t, 3, 2)
	now := f.clock.Now()
	key := newSession(t, f.owner, now, 10*time.Minute)
	stranger := newActor(t)

	tests := []struct {
		name  string
		build func() models.DecryptRequest
	}{
		{
			name: "session of someone else",
			build: func() models.DecryptRequest {
				return decryptRequest(t, newSession(t, stranger, now, time.Minute), f.tx, f.sealed, now)
			},
		},
		{
			name: "stranger names themselves",
			build: func() models.DecryptRequest {
				tx := f.tx
				tx.Sender = stranger.addr
				return decryptRequest(t, newSession(t, stranger, now, time.Minute), tx, f.sealed, now)
			},
		},
		{
			name: "token for another approval",
			build: func() models.DecryptRequest {
				req := decryptRequest(t, key, f.tx, f.sealed, now)
				other := f.tx
				other.ItemID = models.MustObjectID("0x1")
				req.Approval, _ = keyChain.BuildApproval(other)
				return req
			},
		},
		{
			name: "approval digest tampered",
			build: func() models.DecryptRequest {
				req := decryptRequest(t, key, f.tx, f.sealed, now)
				req.Approval.Tx = append(req.Approval.Tx, 0x00)
				return req
			},
		},
		{
			name: "approval for another policy",
			build: func() models.DecryptRequest {
				tx := f.tx
				tx.PolicyID = crypto.DerivePolicyID(tx.VaultID, []byte("other"))
				return decryptRequest(t, key, tx, f.sealed, now)
			},
		},
		{
			name: "challenge signed by another identity",
			build: func() models.DecryptRequest {
				req := decryptRequest(t, key, f.tx, f.sealed, now)
				req.Session.SignedChallenge = ed25519.Sign(stranger.priv, req.Session.Challenge)
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.keys.Decrypt(context.Background(), tt.build())
			assert.ErrorIs(t, err, adapter.ErrUnauthorized)
		})
	}
}

func TestDecrypt_ExpiredSession(t *testing.T) {
	f := newSealedFixture(t, 3, 2)
	minted := f.clock.Now()
	key := newSession(t, f.owner, minted, 10*time.Minute)
	req := decryptRequest(t, key, f.tx, f.sealed, minted)

	f.clock.Advance(10 * time.Minute)
	_, err := f.keys.Decrypt(context.Background(), req)

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}
