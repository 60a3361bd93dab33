// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type decryptService struct {
	ledger   adapter.Ledger
	keys     adapter.ThresholdService
	blobs    adapter.BlobStore
	sessions SessionManager
	access   AccessResolver
	keyChain crypto.KeyChainService
	clock    clock.Clock
}

// NewDecryptService returns the [DecryptService] orchestrating session,
// approval evidence and the threshold key service.
func NewDecryptService(
	ledger adapter.Ledger,
	keys adapter.ThresholdService,
	blobs adapter.BlobStore,
	sessions SessionManager,
	access AccessResolver,
	keyChain crypto.KeyChainService,
	clk clock.Clock,
) DecryptService {
	return &decryptService{
		ledger:   ledger,
		keys:     keys,
		blobs:    blobs,
		sessions: sessions,
		access:   access,
		keyChain: keyChain,
		clock:    clk,
	}
}

// Decrypt never touches the session cache on failure: InvalidFormat,
// ThresholdNotMet and Unauthorized leave the cached key in place.
func (s *decryptService) Decrypt(ctx context.Context, vaultID, itemID models.ObjectID) ([]byte, error) {
	log := logger.FromContext(ctx).With().
		Str("vault_id", vaultID.String()).
		Str("item_id", itemID.String()).
		Logger()

	item, err := getItem(ctx, s.ledger, itemID)
	if err != nil {
		return nil, fmt.Errorf("read item: %w", err)
	}
	if item.VaultID != vaultID {
		return nil, ErrItemNotInVault
	}

	route, err := s.access.ResolveAccess(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	policyID := s.keyChain.PolicyID(vaultID, item.Nonce)

	session, err := s.sessions.Session(ctx)
	if err != nil {
		return nil, err
	}

	ciphertext, err := s.blobs.Get(ctx, item.BlobRef)
	if err != nil {
		log.Err(err).Str("func", "decryptService.Decrypt").Msg("error fetching ciphertext")
		return nil, fmt.Errorf("fetch ciphertext: %w", err)
	}

	payload, err := s.requestDecryption(ctx, ciphertext, policyID, item, route, session)
	if errors.Is(err, adapter.ErrUnauthorized) {
		// the cached route may be stale; re-read the ledger once
		fresh, refreshErr := s.access.Refresh(ctx, vaultID)
		if refreshErr != nil {
			return nil, refreshErr
		}
		if fresh != route {
			log.Info().Str("func", "decryptService.Decrypt").Msg("access route changed, retrying")
			payload, err = s.requestDecryption(ctx, ciphertext, policyID, item, fresh, session)
		}
	}
	if err != nil {
		log.Err(err).Str("func", "decryptService.Decrypt").Msg("decryption refused")
		return nil, err
	}

	plaintext, err := s.keyChain.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapter.ErrInvalidFormat, err)
	}
	return plaintext, nil
}

func (s *decryptService) requestDecryption(
	ctx context.Context,
	ciphertext, policyID []byte,
	item models.Item,
	route models.AccessRoute,
	session models.SessionKey,
) ([]byte, error) {
	approval, err := s.keyChain.BuildApproval(models.ApprovalTx{
		Function: models.ApproveFunction,
		PolicyID: policyID,
		Sender:   session.Address,
		VaultID:  item.VaultID,
		ItemID:   item.ID,
		CapID:    route.CapID,
		SafeID:   route.SafeID,
	})
	if err != nil {
		return nil, fmt.Errorf("build approval: %w", err)
	}

	now := s.clock.Now()
	if !session.ValidFor(session.Address, now) {
		return nil, ErrSessionExpired
	}
	token, err := s.keyChain.SignRequest(session, approval.Digest, now)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	return s.keys.Decrypt(ctx, models.DecryptRequest{
		Ciphertext: ciphertext,
		Session:    sessionEvidence(session, token),
		Approval:   approval,
	})
}

func sessionEvidence(k models.SessionKey, token string) models.SessionEvidence {
	return models.SessionEvidence{
		Address:         k.Address,
		Scope:           k.Scope,
		CreatedAt:       k.CreatedAt,
		TTL:             k.TTL,
		Challenge:       k.Challenge,
		SignedChallenge: k.SignedChallenge,
		IdentityKey:     k.IdentityKey,
		SessionPublic:   k.SessionPublic,
		RequestToken:    token,
	}
}
