// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// pendingSafeID names the Safe in the local dry run of safe.create; the
// ledger assigns the real id.
const pendingSafeID = models.ObjectID("0x0")

type safeService struct {
	submitter *intentSubmitter
	ledger    adapter.Ledger
	pairings  store.PairingRepository
	clock     clock.Clock

	pageSize int
}

func newSafeService(submitter *intentSubmitter, pairings store.PairingRepository, clk clock.Clock, pageSize int) *safeService {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &safeService{
		submitter: submitter,
		ledger:    submitter.ledger,
		pairings:  pairings,
		clock:     clk,
		pageSize:  pageSize,
	}
}

func (s *safeService) self() (models.Address, error) {
	if s.submitter.identity == nil {
		return "", ErrNoIdentity
	}
	return s.submitter.identity.Address(), nil
}

// CreateSafe escrows the Vault's Cap. The Cap must be held directly by
// the identity.
func (s *safeService) CreateSafe(ctx context.Context, vaultID models.ObjectID, settings SafeSettings) (*models.Safe, error) {
	log := logger.FromContext(ctx).With().Str("vault_id", vaultID.String()).Logger()

	self, err := s.self()
	if err != nil {
		return nil, err
	}

	vault, err := getVault(ctx, s.ledger, vaultID)
	if err != nil {
		return nil, err
	}
	capToken, err := getCap(ctx, s.ledger, vault.CapID)
	if err != nil {
		return nil, err
	}
	if _, err = safe.Create(pendingSafeID, self, &capToken, settings.Guardians, settings.Threshold, settings.Deadman, s.clock.Now()); err != nil {
		log.Debug().Err(err).Str("func", "safeService.CreateSafe").Msg("precondition failed")
		return nil, err
	}

	conf, err := s.submitter.submit(ctx, models.Intent{
		Kind:      models.IntentSafeCreate,
		VaultID:   vaultID,
		CapID:     capToken.ID,
		Guardians: settings.Guardians,
		Threshold: settings.Threshold,
		Deadman:   settings.Deadman,
	})
	if err != nil {
		return nil, err
	}

	safeID, ok := conf.CreatedID(models.ObjectSafe)
	if !ok {
		return nil, fmt.Errorf("%w: safe", ErrMissingCreatedObject)
	}
	s.remember(ctx, models.Pairing{Address: self, VaultID: vaultID, CapID: capToken.ID, SafeID: safeID})

	return getSafe(ctx, s.ledger, safeID)
}

func (s *safeService) GetSafe(ctx context.Context, safeID models.ObjectID) (*models.Safe, error) {
	return getSafe(ctx, s.ledger, safeID)
}

// LocateSafe tries, in order: the cached pairing, the Cap's current
// holder, and the safe.created event history. A cached Safe id the ledger
// no longer knows is evicted, not fatal.
func (s *safeService) LocateSafe(ctx context.Context, vaultID models.ObjectID) (*models.Safe, error) {
	log := logger.FromContext(ctx).With().Str("vault_id", vaultID.String()).Logger()

	self, err := s.self()
	if err != nil {
		return nil, err
	}

	if p, err := s.pairings.Get(ctx, self, vaultID); err == nil && p.SafeID != "" {
		found, err := getSafe(ctx, s.ledger, p.SafeID)
		switch {
		case err == nil && found.VaultID == vaultID:
			return found, nil
		case err == nil, errors.Is(err, adapter.ErrNotFound):
			log.Info().Str("func", "safeService.LocateSafe").Str("safe_id", p.SafeID.String()).Msg("evicting stale safe id")
			if delErr := s.pairings.Delete(ctx, self, vaultID); delErr != nil {
				log.Warn().Err(delErr).Str("func", "safeService.LocateSafe").Msg("error evicting pairing")
			}
		default:
			return nil, err
		}
	}

	vault, err := getVault(ctx, s.ledger, vaultID)
	if err != nil {
		return nil, err
	}
	capToken, err := getCap(ctx, s.ledger, vault.CapID)
	if err != nil {
		return nil, err
	}
	if safeID, escrowed := capToken.EscrowedIn(); escrowed {
		return getSafe(ctx, s.ledger, safeID)
	}

	safeID, err := s.searchHistory(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	return getSafe(ctx, s.ledger, safeID)
}

// searchHistory returns the most recent Safe created for vaultID.
func (s *safeService) searchHistory(ctx context.Context, vaultID models.ObjectID) (models.ObjectID, error) {
	var (
		cursor models.Cursor
		latest models.ObjectID
	)
	for {
		batch, err := s.ledger.QueryEvents(ctx, models.EventSafeCreated, cursor, s.pageSize)
		if err != nil {
			return "", fmt.Errorf("search safe history: %w", err)
		}
		for _, e := range batch.Events {
			if e.VaultID == vaultID {
				latest = e.SafeID
			}
		}
		if !batch.HasNextPage || batch.NextCursor == cursor {
			break
		}
		cursor = batch.NextCursor
	}

	if latest == "" {
		return "", ErrNoSafe
	}
	return latest, nil
}

func (s *safeService) Heartbeat(ctx context.Context, safeID models.ObjectID) error {
	_, _, err := s.transition(ctx, models.Intent{Kind: models.IntentSafeHeartbeat, SafeID: safeID})
	return err
}

func (s *safeService) ApproveRecovery(ctx context.Context, safeID models.ObjectID, candidate models.Address) error {
	_, _, err := s.transition(ctx, models.Intent{Kind: models.IntentSafeApproveRecovery, SafeID: safeID, Candidate: candidate})
	return err
}

// Claim moves the Cap to the beneficiary's direct holding.
func (s *safeService) Claim(ctx context.Context, safeID models.ObjectID) error {
	res, in, err := s.transition(ctx, models.Intent{Kind: models.IntentSafeClaim, SafeID: safeID})
	if err != nil {
		return err
	}
	s.rehome(ctx, in.Sender, res)
	return nil
}

func (s *safeService) UpdateDeadman(ctx context.Context, safeID models.ObjectID, deadman *models.Deadman) error {
	_, _, err := s.transition(ctx, models.Intent{Kind: models.IntentSafeUpdateDeadman, SafeID: safeID, Deadman: deadman})
	return err
}

func (s *safeService) UpdateGuardians(ctx context.Context, safeID models.ObjectID, guardians []models.Address, threshold int) error {
	_, _, err := s.transition(ctx, models.Intent{
		Kind:      models.IntentSafeUpdateGuardians,
		SafeID:    safeID,
		Guardians: guardians,
		Threshold: threshold,
	})
	return err
}

// Disable returns the Cap to the owner's direct holding.
func (s *safeService) Disable(ctx context.Context, safeID models.ObjectID) error {
	res, in, err := s.transition(ctx, models.Intent{Kind: models.IntentSafeDisable, SafeID: safeID})
	if err != nil {
		return err
	}
	s.rehome(ctx, in.Sender, res)
	return nil
}

// transition dry-runs in against the current snapshot and submits it when
// the local rules accept it. The ledger re-checks everything.
func (s *safeService) transition(ctx context.Context, in models.Intent) (safe.Result, models.Intent, error) {
	log := logger.FromContext(ctx).With().
		Str("safe_id", in.SafeID.String()).
		Str("intent", string(in.Kind)).
		Logger()

	self, err := s.self()
	if err != nil {
		return safe.Result{}, in, err
	}
	in.Sender = self

	cur, err := getSafe(ctx, s.ledger, in.SafeID)
	if err != nil {
		return safe.Result{}, in, err
	}

	res, err := safe.Apply(cur, in, s.clock.Now())
	if err != nil {
		log.Debug().Err(err).Str("func", "safeService.transition").Msg("precondition failed")
		return safe.Result{}, in, err
	}

	if _, err = s.submitter.submit(ctx, in); err != nil {
		return safe.Result{}, in, err
	}
	return res, in, nil
}

// rehome caches the direct pairing of a Cap released by claim or disable.
func (s *safeService) rehome(ctx context.Context, holder models.Address, res safe.Result) {
	if res.Released == nil || res.Safe == nil {
		return
	}
	if err := s.pairings.DeleteBySafe(ctx, res.Safe.ID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "safeService.rehome").Msg("error evicting escrowed pairings")
	}
	s.remember(ctx, models.Pairing{Address: holder, VaultID: res.Released.VaultID, CapID: res.Released.ID})
}

func (s *safeService) remember(ctx context.Context, p models.Pairing) {
	p.UpdatedAt = s.clock.Now()
	if err := s.pairings.Save(ctx, p); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "safeService.remember").Msg("error caching pairing")
	}
}
