// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devnet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"filippo.io/age"
	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// ErrNoKeyServers is returned when a key service is built without servers.
var ErrNoKeyServers = errors.New("at least one key server is required")

// Authorizer applies the ledger's access rule to an approval transaction.
type Authorizer interface {
	Authorize(ctx context.Context, tx models.ApprovalTx) error
}

// sealedEnvelope is the ciphertext format of the key service. Body is one
// age file with a recipient stanza per key server.
type sealedEnvelope struct {
	PolicyID  []byte `cbor:"1,keyasint"`
	Threshold int    `cbor:"2,keyasint"`
	Body      []byte `cbor:"3,keyasint"`
}

// KeyService is an [adapter.ThresholdService] simulating a committee of key
// servers, each holding an age X25519 identity. Decrypt counts one answer
// per online server that opens the envelope and fails with
// [adapter.ErrThresholdNotMet] when the answers fall short of the
// threshold chosen at encryption time.
type KeyService struct {
	authorizer Authorizer
	clock      clock.Clock

	servers    []*age.X25519Identity
	recipients []age.Recipient

	mu      sync.RWMutex
	offline int
}

// NewKeyService starts servers key servers, offline of which do not answer.
func NewKeyService(authorizer Authorizer, clk clock.Clock, servers, offline int) (*KeyService, error) {
	if servers <= 0 {
		return nil, ErrNoKeyServers
	}

	k := &KeyService{authorizer: authorizer, clock: clk}
	for range servers {
		id, err := age.GenerateX25519Identity()
		if err != nil {
			return nil, fmt.Errorf("error generating key server identity: %w", err)
		}
		k.servers = append(k.servers, id)
		k.recipients = append(k.recipients, id.Recipient())
	}
	k.SetOffline(offline)
	return k, nil
}

var _ adapter.ThresholdService = (*KeyService)(nil)

// SetOffline changes how many servers refuse to answer, clamped to
// [0, servers].
func (k *KeyService) SetOffline(n int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.offline = min(max(n, 0), len(k.servers))
}

// Servers returns the committee size.
func (k *KeyService) Servers() int { return len(k.servers) }

// Encrypt seals req.Plaintext to every key server under req.PolicyID.
func (k *KeyService) Encrypt(ctx context.Context, req models.EncryptRequest) ([]byte, error) {
	if _, _, err := crypto.SplitPolicyID(req.PolicyID); err != nil {
		return nil, fmt.Errorf("%w: %v", adapter.ErrBadRequest, err)
	}
	if req.Threshold < 1 || req.Threshold > len(k.servers) {
		return nil, fmt.Errorf("%w: threshold %d outside [1, %d]", adapter.ErrBadRequest, req.Threshold, len(k.servers))
	}

	var body bytes.Buffer
	w, err := age.Encrypt(&body, k.recipients...)
	if err != nil {
		return nil, fmt.Errorf("error creating age encryptor: %w", err)
	}
	if _, err = w.Write(req.Plaintext); err != nil {
		return nil, fmt.Errorf("error writing plaintext: %w", err)
	}
	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing age encryption: %w", err)
	}

	return crypto.Marshal(sealedEnvelope{
		PolicyID:  bytes.Clone(req.PolicyID),
		Threshold: req.Threshold,
		Body:      body.Bytes(),
	})
}

// Decrypt verifies the session and approval evidence, asks the ledger rule
// whether the sender may read, and only then collects answers from the
// online servers.
func (k *KeyService) Decrypt(ctx context.Context, req models.DecryptRequest) ([]byte, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*KeyService.Decrypt").
		Str("address", req.Session.Address.String()).
		Logger()

	var env sealedEnvelope
	if err := crypto.Unmarshal(req.Ciphertext, &env); err != nil || len(env.Body) == 0 {
		return nil, fmt.Errorf("%w: not a sealed envelope", adapter.ErrInvalidFormat)
	}

	tx, err := k.verifyEvidence(ctx, req, env)
	if err != nil {
		log.Warn().Err(err).Msg("evidence rejected")
		return nil, err
	}

	k.mu.RLock()
	online := k.servers[:len(k.servers)-k.offline]
	k.mu.RUnlock()

	var (
		plaintext []byte
		answers   int
	)
	for _, id := range online {
		r, err := age.Decrypt(bytes.NewReader(env.Body), id)
		if err != nil {
			continue
		}
		out, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		plaintext = out
		answers++
	}

	if answers == 0 && len(online) > 0 {
		return nil, fmt.Errorf("%w: no server could open the envelope", adapter.ErrInvalidFormat)
	}
	if answers < env.Threshold {
		log.Info().Int("answers", answers).Int("threshold", env.Threshold).Msg("threshold not met")
		return nil, fmt.Errorf("%w: %d of %d answers", adapter.ErrThresholdNotMet, answers, env.Threshold)
	}

	log.Debug().Str("item_id", tx.ItemID.String()).Int("answers", answers).Msg("plaintext released")
	return plaintext, nil
}

func (k *KeyService) verifyEvidence(ctx context.Context, req models.DecryptRequest, env sealedEnvelope) (models.ApprovalTx, error) {
	now := k.clock.Now()
	if err := crypto.VerifySession(req.Session, now); err != nil {
		return models.ApprovalTx{}, fmt.Errorf("%w: %v", adapter.ErrUnauthorized, err)
	}
	if err := crypto.VerifyRequestToken(req.Session.RequestToken, req.Session, req.Approval.Digest, now); err != nil {
		return models.ApprovalTx{}, fmt.Errorf("%w: %v", adapter.ErrUnauthorized, err)
	}

	tx, err := crypto.OpenApproval(req.Approval)
	if err != nil {
		return models.ApprovalTx{}, fmt.Errorf("%w: %v", adapter.ErrUnauthorized, err)
	}
	if tx.Sender != req.Session.Address {
		return models.ApprovalTx{}, fmt.Errorf("%w: approval sender is not the session owner", adapter.ErrUnauthorized)
	}
	if !bytes.Equal(tx.PolicyID, env.PolicyID) {
		return models.ApprovalTx{}, fmt.Errorf("%w: approval names another policy", adapter.ErrUnauthorized)
	}
	if vaultID, _, err := crypto.SplitPolicyID(env.PolicyID); err != nil || vaultID != tx.VaultID {
		return models.ApprovalTx{}, fmt.Errorf("%w: policy belongs to another vault", adapter.ErrUnauthorized)
	}

	if err = k.authorizer.Authorize(ctx, tx); err != nil {
		return models.ApprovalTx{}, err
	}
	return tx, nil
}
