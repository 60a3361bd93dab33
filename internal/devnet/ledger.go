// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devnet

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/zeebo/blake3"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// MemoryLedger is an in-memory [adapter.Ledger]. Intents are applied one at
// a time under a single lock, so concurrent submissions are serialized in
// arrival order.
type MemoryLedger struct {
	mu sync.RWMutex

	clock clock.Clock
	ids   *utils.UUIDGenerator

	vaults   map[models.ObjectID]*models.Vault
	caps     map[models.ObjectID]*models.Cap
	safes    map[models.ObjectID]*models.Safe
	items    map[models.ObjectID]*models.Item
	versions map[models.ObjectID]uint64

	// events are kept per kind in sequence order. Sequences come from one
	// counter, so they also order events across kinds.
	events map[models.EventKind][]models.Event
	seq    models.Cursor

	// confirmed remembers the answer to every idempotency key.
	confirmed map[string]models.Confirmation
}

// NewMemoryLedger returns an empty ledger reading time from clk.
func NewMemoryLedger(clk clock.Clock) *MemoryLedger {
	return &MemoryLedger{
		clock:     clk,
		ids:       utils.NewUUIDGenerator(),
		vaults:    map[models.ObjectID]*models.Vault{},
		caps:      map[models.ObjectID]*models.Cap{},
		safes:     map[models.ObjectID]*models.Safe{},
		items:     map[models.ObjectID]*models.Item{},
		versions:  map[models.ObjectID]uint64{},
		events:    map[models.EventKind][]models.Event{},
		confirmed: map[string]models.Confirmation{},
	}
}

var _ adapter.Ledger = (*MemoryLedger)(nil)

// Submit verifies the sender's signature and applies the intent. A
// repeated idempotency key returns the first confirmation without applying
// anything.
func (l *MemoryLedger) Submit(ctx context.Context, in models.SignedIntent) (models.Confirmation, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*MemoryLedger.Submit").
		Str("intent", string(in.Intent.Kind)).
		Str("sender", in.Intent.Sender.String()).
		Logger()

	if err := verifyIntent(in); err != nil {
		log.Warn().Err(err).Msg("intent signature rejected")
		return models.Confirmation{}, err
	}
	if in.Intent.IdempotencyKey == "" {
		return models.Confirmation{}, fmt.Errorf("%w: missing idempotency key", adapter.ErrBadRequest)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if conf, ok := l.confirmed[in.Intent.IdempotencyKey]; ok {
		log.Debug().Str("idempotency_key", in.Intent.IdempotencyKey).Msg("intent already applied")
		return conf, nil
	}

	conf, err := l.applyLocked(in.Intent)
	if err != nil {
		log.Info().Err(err).Str("reason", adapter.ReasonCode(err)).Msg("intent rejected")
		return models.Confirmation{}, err
	}

	for i := range conf.Events {
		l.seq++
		conf.Events[i].Sequence = l.seq
		kind := conf.Events[i].Kind
		l.events[kind] = append(l.events[kind], conf.Events[i])
	}
	sum := blake3.Sum256(in.Signature)
	conf.Digest = "0x" + hex.EncodeToString(sum[:])
	l.confirmed[in.Intent.IdempotencyKey] = conf

	log.Info().Str("digest", conf.Digest).Int("events", len(conf.Events)).Msg("intent applied")
	return conf, nil
}

// GetObject returns a copy of the object's current state.
func (l *MemoryLedger) GetObject(ctx context.Context, id models.ObjectID) (models.Object, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	obj := models.Object{ID: id, Version: l.versions[id]}
	switch {
	case l.vaults[id] != nil:
		v := *l.vaults[id]
		v.Items = slices.Clone(v.Items)
		obj.Kind, obj.Vault = models.ObjectVault, &v
	case l.caps[id] != nil:
		c := *l.caps[id]
		obj.Kind, obj.Cap = models.ObjectCap, &c
	case l.safes[id] != nil:
		obj.Kind, obj.Safe = models.ObjectSafe, l.safes[id].Clone()
	case l.items[id] != nil:
		it := *l.items[id]
		it.Nonce = bytes.Clone(it.Nonce)
		obj.Kind, obj.Item = models.ObjectItem, &it
	default:
		return models.Object{}, fmt.Errorf("%w: object %s", adapter.ErrNotFound, id)
	}
	return obj, nil
}

// QueryEvents returns up to limit events of kind after cursor. A
// non-positive limit means the default page size.
func (l *MemoryLedger) QueryEvents(ctx context.Context, kind models.EventKind, cursor models.Cursor, limit int) (models.EventBatch, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)

	l.mu.RLock()
	defer l.mu.RUnlock()

	stream := l.events[kind]
	from := sort.Search(len(stream), func(i int) bool { return stream[i].Sequence > cursor })
	to := min(from+limit, len(stream))

	batch := models.EventBatch{
		Events:      slices.Clone(stream[from:to]),
		NextCursor:  cursor,
		HasNextPage: to < len(stream),
	}
	if n := len(batch.Events); n > 0 {
		batch.NextCursor = batch.Events[n-1].Sequence
	}
	return batch, nil
}

// Authorize applies the ledger's access rule to an approval transaction:
// the item belongs to the vault and its nonce yields the policy id, the cap
// is the vault's, and the sender holds it directly or owns the active Safe
// escrowing it.
func (l *MemoryLedger) Authorize(ctx context.Context, tx models.ApprovalTx) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if tx.Function != models.ApproveFunction {
		return fmt.Errorf("%w: unknown entry point %q", adapter.ErrUnauthorized, tx.Function)
	}
	if err := l.authorizeLocked(tx.Sender, tx.VaultID, tx.CapID, tx.SafeID); err != nil {
		return err
	}
	if !l.vaults[tx.VaultID].HasItem(tx.ItemID) {
		return fmt.Errorf("%w: item %s is not in vault %s", adapter.ErrUnauthorized, tx.ItemID, tx.VaultID)
	}
	if !bytes.Equal(crypto.DerivePolicyID(tx.VaultID, l.items[tx.ItemID].Nonce), tx.PolicyID) {
		return fmt.Errorf("%w: policy id does not match item %s", adapter.ErrUnauthorized, tx.ItemID)
	}
	return nil
}

func (l *MemoryLedger) authorizeLocked(sender models.Address, vaultID, capID, safeID models.ObjectID) error {
	v, ok := l.vaults[vaultID]
	if !ok {
		return fmt.Errorf("%w: vault %s", adapter.ErrNotFound, vaultID)
	}
	if v.CapID != capID {
		return fmt.Errorf("%w: cap %s", adapter.ErrUnauthorized, capID)
	}
	c := l.caps[capID]

	if safeID.IsZero() {
		if !c.HeldDirectlyBy(sender) {
			return fmt.Errorf("%w: %s does not hold cap %s", adapter.ErrUnauthorized, sender, capID)
		}
		return nil
	}

	s, ok := l.safes[safeID]
	switch {
	case !ok, s.State() != models.SafeActive, !s.HasCap(), s.Cap.ID != capID:
		return fmt.Errorf("%w: safe %s does not escrow cap %s", adapter.ErrUnauthorized, safeID, capID)
	case s.Owner != sender:
		return fmt.Errorf("%w: %s does not own safe %s", adapter.ErrUnauthorized, sender, safeID)
	}
	return nil
}

// verifyIntent checks that the public key derives the sender and signed
// the intent's canonical encoding.
func verifyIntent(in models.SignedIntent) error {
	if len(in.PublicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: malformed public key", adapter.ErrUnauthorized)
	}
	if crypto.AddressFromPublicKey(in.PublicKey) != in.Intent.Sender {
		return fmt.Errorf("%w: public key does not match sender", adapter.ErrUnauthorized)
	}
	payload, err := crypto.Marshal(in.Intent)
	if err != nil {
		return fmt.Errorf("%w: encode intent: %v", adapter.ErrBadRequest, err)
	}
	if !ed25519.Verify(in.PublicKey, payload, in.Signature) {
		return fmt.Errorf("%w: bad signature", adapter.ErrUnauthorized)
	}
	return nil
}

func (l *MemoryLedger) newID() models.ObjectID {
	id, err := models.ParseObjectID(l.ids.GenerateHex())
	if err != nil {
		panic("devnet: generated object id is not hex: " + err.Error())
	}
	return id
}

func (l *MemoryLedger) touch(ids ...models.ObjectID) {
	for _, id := range ids {
		l.versions[id]++
	}
}
