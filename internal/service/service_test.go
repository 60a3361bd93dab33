package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/mock"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	start   = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	vaultID = models.MustObjectID("0x7a")
	capID   = models.MustObjectID("0xca")
	safeID  = models.MustObjectID("0x5a")
	itemID  = models.MustObjectID("0x17")
)

// testIdentity signs everything it is asked to unless deny is set.
type testIdentity struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey

	deny     bool
	onPrompt func(req models.SignatureRequest)
	gate     chan struct{}

	prompts        atomic.Int32
	sessionPrompts atomic.Int32
}

func newTestIdentity(t *testing.T) *testIdentity {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &testIdentity{pub: pub, priv: priv}
}

func (i *testIdentity) Address() models.Address { return crypto.AddressFromPublicKey(i.pub) }
func (i *testIdentity) PublicKey() ed25519.PublicKey { return i.pub }

func (i *testIdentity) RequestSignature(ctx context.Context, req models.SignatureRequest) ([]byte, error) {
	i.prompts.Add(1)
	if req.Purpose == models.PurposeSession {
		i.sessionPrompts.Add(1)
	}
	if i.gate != nil {
		select {
		case <-i.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if i.onPrompt != nil {
		i.onPrompt(req)
	}
	if i.deny {
		return nil, adapter.ErrSignatureDenied
	}
	return ed25519.Sign(i.priv, req.Payload), nil
}

// stubAccess answers ResolveAccess with route and Refresh with refreshed
// (or route when refreshed is unset).
type stubAccess struct {
	route     models.AccessRoute
	refreshed *models.AccessRoute
	err       error

	refreshes atomic.Int32
}

func (s *stubAccess) ResolveAccess(context.Context, models.ObjectID) (models.AccessRoute, error) {
	return s.route, s.err
}

func (s *stubAccess) Refresh(context.Context, models.ObjectID) (models.AccessRoute, error) {
	s.refreshes.Add(1)
	if s.err != nil {
		return models.AccessRoute{}, s.err
	}
	if s.refreshed != nil {
		return *s.refreshed, nil
	}
	return s.route, nil
}

// serveObjects answers every GetObject from objs, and ErrNotFound for
// anything else.
func serveObjects(ledger *mock.MockLedger, objs ...models.Object) {
	byID := make(map[models.ObjectID]models.Object, len(objs))
	for _, o := range objs {
		byID[o.ID] = o
	}
	ledger.EXPECT().GetObject(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id models.ObjectID) (models.Object, error) {
			o, ok := byID[id]
			if !ok {
				return models.Object{}, adapter.ErrNotFound
			}
			return o, nil
		}).AnyTimes()
}

func vaultObject(items ...models.ObjectID) models.Object {
	return models.Object{ID: vaultID, Kind: models.ObjectVault, Vault: &models.Vault{
		ID:    vaultID,
		Name:  "personal",
		CapID: capID,
		Items: items,
	}}
}

func capObject(holder models.Holding) models.Object {
	return models.Object{ID: capID, Kind: models.ObjectCap, Cap: &models.Cap{ID: capID, VaultID: vaultID, Holder: holder}}
}

func safeObject(s *models.Safe) models.Object {
	return models.Object{ID: s.ID, Kind: models.ObjectSafe, Safe: s}
}

func itemObject(item models.Item) models.Object {
	return models.Object{ID: item.ID, Kind: models.ObjectItem, Item: &item}
}

// activeSafe escrows the test Cap for owner.
func activeSafe(owner models.Address, guardians ...models.Address) *models.Safe {
	threshold := 0
	if len(guardians) > 0 {
		threshold = 2
		if len(guardians) < 2 {
			threshold = 1
		}
	}
	return &models.Safe{
		ID:            safeID,
		VaultID:       vaultID,
		Owner:         owner,
		Cap:           &models.Cap{ID: capID, VaultID: vaultID, Holder: models.HeldEscrowed{SafeID: safeID}},
		Guardians:     guardians,
		Threshold:     threshold,
		RecoveryVotes: map[models.Address][]models.Address{},
		LastActivity:  start,
		Version:       1,
	}
}

func verifySigned(t *testing.T, signed models.SignedIntent) {
	t.Helper()
	payload, err := crypto.Marshal(signed.Intent)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(signed.PublicKey, payload, signed.Signature), "intent signature")
	require.Equal(t, crypto.AddressFromPublicKey(signed.PublicKey), signed.Intent.Sender)
}
