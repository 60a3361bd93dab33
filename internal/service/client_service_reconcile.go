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

// WatchedEvents are the event kinds that change who can reach a Vault.
var WatchedEvents = []models.EventKind{
	models.EventRecoveryExecuted,
	models.EventDeadmanClaimed,
	models.EventSafeDisabled,
}

type cacheOpKind int

const (
	// opEvict drops the identity's pairing for a Vault.
	opEvict cacheOpKind = iota
	// opEvictSafe drops every escrowed pairing through a Safe.
	opEvictSafe
	// opGrant re-resolves the Vault and marks it newly available.
	opGrant
)

type cacheOp struct {
	kind    cacheOpKind
	vaultID models.ObjectID
	safeID  models.ObjectID
}

// reduceEvent maps one ledger event to pairing cache operations for self.
// It has no side effects; Poll executes the result in order.
func reduceEvent(self models.Address, e models.Event) []cacheOp {
	switch e.Kind {
	case models.EventRecoveryExecuted:
		ops := []cacheOp{{kind: opEvictSafe, safeID: e.SafeID}}
		if e.NewOwner == self {
			ops = append(ops, cacheOp{kind: opGrant, vaultID: e.VaultID, safeID: e.SafeID})
		}
		return ops
	case models.EventDeadmanClaimed:
		ops := []cacheOp{{kind: opEvictSafe, safeID: e.SafeID}}
		if e.PriorOwner == self {
			ops = append(ops, cacheOp{kind: opEvict, vaultID: e.VaultID})
		}
		if e.Beneficiary == self {
			ops = append(ops, cacheOp{kind: opGrant, vaultID: e.VaultID})
		}
		return ops
	case models.EventSafeDisabled:
		return []cacheOp{{kind: opEvictSafe, safeID: e.SafeID}}
	}
	return nil
}

type reconcileService struct {
	ledger   adapter.Ledger
	pairings store.PairingRepository
	cursors  store.CursorRepository
	access   AccessResolver
	identity adapter.IdentityProvider
	clock    clock.Clock

	pageSize int
}

// NewReconcileService returns a [ReconcileService] that reads events from
// ledger and maintains pairings. It only reads from the ledger.
func NewReconcileService(
	ledger adapter.Ledger,
	pairings store.PairingRepository,
	cursors store.CursorRepository,
	access AccessResolver,
	identity adapter.IdentityProvider,
	clk clock.Clock,
	pageSize int,
) ReconcileService {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &reconcileService{
		ledger:   ledger,
		pairings: pairings,
		cursors:  cursors,
		access:   access,
		identity: identity,
		clock:    clk,
		pageSize: pageSize,
	}
}

// Poll drains each watched kind in turn. The cursor is saved after every
// page, so a failure part way resumes from the last completed page.
func (s *reconcileService) Poll(ctx context.Context) (int, error) {
	if s.identity == nil {
		return 0, ErrNoIdentity
	}
	self := s.identity.Address()

	applied := 0
	for _, kind := range WatchedEvents {
		n, err := s.drain(ctx, self, kind)
		applied += n
		if err != nil {
			return applied, err
		}
	}
	return applied, nil
}

func (s *reconcileService) drain(ctx context.Context, self models.Address, kind models.EventKind) (int, error) {
	log := logger.FromContext(ctx).With().Str("kind", string(kind)).Logger()

	cursor, err := s.cursors.Get(ctx, kind)
	if err != nil {
		return 0, fmt.Errorf("read cursor %s: %w", kind, err)
	}

	applied := 0
	for {
		batch, err := s.ledger.QueryEvents(ctx, kind, cursor, s.pageSize)
		if err != nil {
			log.Err(err).Str("func", "reconcileService.drain").Uint64("cursor", uint64(cursor)).Msg("error querying events")
			return applied, fmt.Errorf("query %s events: %w", kind, err)
		}

		for _, e := range batch.Events {
			for _, op := range reduceEvent(self, e) {
				if err = s.execute(ctx, self, op); err != nil {
					return applied, err
				}
			}
			applied++
		}

		if len(batch.Events) > 0 && batch.NextCursor != cursor {
			if err = s.cursors.Save(ctx, kind, batch.NextCursor); err != nil {
				return applied, fmt.Errorf("save cursor %s: %w", kind, err)
			}
			log.Debug().Str("func", "reconcileService.drain").
				Uint64("cursor", uint64(batch.NextCursor)).
				Int("events", len(batch.Events)).
				Msg("page applied")
			cursor = batch.NextCursor
		}
		if !batch.HasNextPage || len(batch.Events) == 0 {
			return applied, nil
		}
	}
}

func (s *reconcileService) execute(ctx context.Context, self models.Address, op cacheOp) error {
	log := logger.FromContext(ctx)

	switch op.kind {
	case opEvict:
		log.Info().Str("func", "reconcileService.execute").Str("vault_id", op.vaultID.String()).Msg("access lost, evicting pairing")
		return s.pairings.Delete(ctx, self, op.vaultID)
	case opEvictSafe:
		return s.pairings.DeleteBySafe(ctx, op.safeID)
	case opGrant:
		route, err := s.access.Refresh(ctx, op.vaultID)
		if errors.Is(err, ErrNoAccess) || errors.Is(err, adapter.ErrNotFound) {
			// superseded by a later transfer
			log.Debug().Str("func", "reconcileService.execute").Str("vault_id", op.vaultID.String()).Msg("grant no longer holds")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Str("func", "reconcileService.execute").Str("vault_id", op.vaultID.String()).Msg("vault newly available")
		return s.pairings.Save(ctx, models.Pairing{
			Address:        self,
			VaultID:        route.VaultID,
			CapID:          route.CapID,
			SafeID:         route.SafeID,
			NewlyAvailable: true,
			UpdatedAt:      s.clock.Now(),
		})
	}
	return nil
}

func (s *reconcileService) NewlyAvailable(ctx context.Context) ([]models.Pairing, error) {
	if s.identity == nil {
		return nil, ErrNoIdentity
	}
	return s.pairings.List(ctx, store.PairingFilter{Address: s.identity.Address(), OnlyNew: true})
}

func (s *reconcileService) Acknowledge(ctx context.Context, vaultID models.ObjectID) error {
	if s.identity == nil {
		return ErrNoIdentity
	}
	p, err := s.pairings.Get(ctx, s.identity.Address(), vaultID)
	if err != nil {
		return err
	}
	if !p.NewlyAvailable {
		return nil
	}
	p.NewlyAvailable = false
	p.UpdatedAt = s.clock.Now()
	return s.pairings.Save(ctx, p)
}
