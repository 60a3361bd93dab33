package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/mock"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAccessFixture(t *testing.T) (AccessResolver, *mock.MockLedger, *mock.MockPairingRepository, *testIdentity) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ledger := mock.NewMockLedger(ctrl)
	pairings := mock.NewMockPairingRepository(ctrl)
	id := newTestIdentity(t)
	return NewAccessResolver(ledger, pairings, id, clock.NewFake(start)), ledger, pairings, id
}

func TestAccessResolver_CachedPairingSkipsLedger(t *testing.T) {
	r, _, pairings, id := newAccessFixture(t)
	cached := models.Pairing{Address: id.Address(), VaultID: vaultID, CapID: capID, SafeID: safeID}
	pairings.EXPECT().Get(gomock.Any(), id.Address(), vaultID).Return(cached, nil)

	route, err := r.ResolveAccess(context.Background(), vaultID)
	require.NoError(t, err)
	assert.Equal(t, cached.Route(), route)
	assert.True(t, route.Escrowed())
}

func TestAccessResolver_DirectHolder(t *testing.T) {
	r, ledger, pairings, id := newAccessFixture(t)
	serveObjects(ledger, vaultObject(), capObject(models.HeldDirect{Owner: id.Address()}))

	pairings.EXPECT().Get(gomock.Any(), id.Address(), vaultID).Return(models.Pairing{}, store.ErrPairingNotFound)
	pairings.EXPECT().Save(gomock.Any(), models.Pairing{
		Address:   id.Address(),
		VaultID:   vaultID,
		CapID:     capID,
		UpdatedAt: start,
	}).Return(nil)

	route, err := r.ResolveAccess(context.Background(), vaultID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessRoute{VaultID: vaultID, CapID: capID, Holder: id.Address()}, route)
}

func TestAccessResolver_EscrowedInOwnSafe(t *testing.T) {
	r, ledger, pairings, id := newAccessFixture(t)
	serveObjects(ledger,
		vaultObject(),
		capObject(models.HeldEscrowed{SafeID: safeID}),
		safeObject(activeSafe(id.Address())),
	)
	pairings.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	route, err := r.Refresh(context.Background(), vaultID)
	require.NoError(t, err)
	assert.Equal(t, safeID, route.SafeID)
	assert.Equal(t, capID, route.CapID)
}

func TestAccessResolver_DeniedRoutesAreEvicted(t *testing.T) {
	stranger := models.MustAddress("0xbeef")

	tests := []struct {
		name string
		objs func(self models.Address) []models.Object
	}{
		{
			name: "cap held by someone else",
			objs: func(models.Address) []models.Object {
				return []models.Object{vaultObject(), capObject(models.HeldDirect{Owner: stranger})}
			},
		},
		{
			name: "safe owned by someone else",
			objs: func(models.Address) []models.Object {
				return []models.Object{vaultObject(), capObject(models.HeldEscrowed{SafeID: safeID}), safeObject(activeSafe(stranger))}
			},
		},
		{
			name: "safe disabled",
			objs: func(self models.Address) []models.Object {
				s := activeSafe(self)
				s.Disabled = true
				return []models.Object{vaultObject(), capObject(models.HeldEscrowed{SafeID: safeID}), safeObject(s)}
			},
		},
		{
			name: "safe claimed",
			objs: func(self models.Address) []models.Object {
				s := activeSafe(self)
				s.DeadmanClaimed = true
				s.Cap = nil
				return []models.Object{vaultObject(), capObject(models.HeldEscrowed{SafeID: safeID}), safeObject(s)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ledger, pairings, id := newAccessFixture(t)
			serveObjects(ledger, tt.objs(id.Address())...)
			pairings.EXPECT().Delete(gomock.Any(), id.Address(), vaultID).Return(nil)

			_, err := r.Refresh(context.Background(), vaultID)
			assert.ErrorIs(t, err, ErrNoAccess)
		})
	}
}

func TestAccessResolver_UnknownVault(t *testing.T) {
	r, ledger, _, _ := newAccessFixture(t)
	serveObjects(ledger)

	_, err := r.Refresh(context.Background(), vaultID)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestAccessResolver_WrongObjectKind(t *testing.T) {
	r, ledger, _, _ := newAccessFixture(t)
	wrong := capObject(models.HeldDirect{})
	wrong.ID = vaultID
	serveObjects(ledger, wrong)

	_, err := r.Refresh(context.Background(), vaultID)
	assert.ErrorIs(t, err, ErrUnexpectedObject)
}
