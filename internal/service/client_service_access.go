package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type accessResolver struct {
	ledger   adapter.Ledger
	pairings store.PairingRepository
	identity adapter.IdentityProvider
	clock    clock.Clock
}

// NewAccessResolver returns an [AccessResolver] that caches routes in
// pairings.
func NewAccessResolver(
	ledger adapter.Ledger,
	pairings store.PairingRepository,
	identity adapter.IdentityProvider,
	clk clock.Clock,
) AccessResolver {
	return &accessResolver{ledger: ledger, pairings: pairings, identity: identity, clock: clk}
}

func (r *accessResolver) ResolveAccess(ctx context.Context, vaultID models.ObjectID) (models.AccessRoute, error) {
	if r.identity == nil {
		return models.AccessRoute{}, ErrNoIdentity
	}

	p, err := r.pairings.Get(ctx, r.identity.Address(), vaultID)
	if err == nil {
		return p.Route(), nil
	}
	if !errors.Is(err, store.ErrPairingNotFound) {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "accessResolver.ResolveAccess").Msg("pairing cache read failed")
	}

	return r.Refresh(ctx, vaultID)
}

// Refresh walks Vault → Cap → holder on the ledger. A direct holder must
// be the identity; an escrowing Safe must be Active and owned by it.
func (r *accessResolver) Refresh(ctx context.Context, vaultID models.ObjectID) (models.AccessRoute, error) {
	log := logger.FromContext(ctx)

	if r.identity == nil {
		return models.AccessRoute{}, ErrNoIdentity
	}
	self := r.identity.Address()

	vault, err := getVault(ctx, r.ledger, vaultID)
	if err != nil {
		return models.AccessRoute{}, fmt.Errorf("resolve vault %s: %w", vaultID, err)
	}
	capToken, err := getCap(ctx, r.ledger, vault.CapID)
	if err != nil {
		return models.AccessRoute{}, fmt.Errorf("resolve cap %s: %w", vault.CapID, err)
	}

	route := models.AccessRoute{VaultID: vaultID, CapID: capToken.ID, Holder: self}
	switch h := capToken.Holder.(type) {
	case models.HeldDirect:
		if h.Owner != self {
			return r.deny(ctx, vaultID)
		}
	case models.HeldEscrowed:
		s, err := getSafe(ctx, r.ledger, h.SafeID)
		if err != nil {
			return models.AccessRoute{}, fmt.Errorf("resolve safe %s: %w", h.SafeID, err)
		}
		if s.Owner != self || s.State() != models.SafeActive || !s.HasCap() {
			return r.deny(ctx, vaultID)
		}
		route.SafeID = s.ID
	default:
		return models.AccessRoute{}, fmt.Errorf("resolve cap %s: %w", capToken.ID, models.ErrUnknownHolding)
	}

	if err = r.pairings.Save(ctx, models.Pairing{
		Address:   self,
		VaultID:   vaultID,
		CapID:     route.CapID,
		SafeID:    route.SafeID,
		UpdatedAt: r.clock.Now(),
	}); err != nil {
		log.Warn().Err(err).Str("func", "accessResolver.Refresh").Msg("error caching pairing")
	}
	return route, nil
}

// deny evicts whatever the cache believed about vaultID.
func (r *accessResolver) deny(ctx context.Context, vaultID models.ObjectID) (models.AccessRoute, error) {
	if err := r.pairings.Delete(ctx, r.identity.Address(), vaultID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "accessResolver.deny").Msg("error evicting pairing")
	}
	return models.AccessRoute{}, ErrNoAccess
}
