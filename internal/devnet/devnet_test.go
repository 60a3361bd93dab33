package devnet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

// actor is a ledger account backed by an ed25519 key.
type actor struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
	addr models.Address
}

func newActor(t *testing.T) actor {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return actor{pub: pub, priv: priv, addr: crypto.AddressFromPublicKey(pub)}
}

var idempotencyKeys = utils.NewUUIDGenerator()

// sign stamps sender and a fresh idempotency key unless one is set.
func (a actor) sign(t *testing.T, in models.Intent) models.SignedIntent {
	t.Helper()
	in.Sender = a.addr
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = idempotencyKeys.Generate()
	}
	payload, err := crypto.Marshal(in)
	require.NoError(t, err)
	return models.SignedIntent{Intent: in, PublicKey: a.pub, Signature: ed25519.Sign(a.priv, payload)}
}

func (a actor) submit(t *testing.T, l *MemoryLedger, in models.Intent) (models.Confirmation, error) {
	t.Helper()
	return l.Submit(context.Background(), a.sign(t, in))
}

func (a actor) mustSubmit(t *testing.T, l *MemoryLedger, in models.Intent) models.Confirmation {
	t.Helper()
	conf, err := a.submit(t, l, in)
	require.NoError(t, err)
	return conf
}

// createVault returns the vault and its cap.
func (a actor) createVault(t *testing.T, l *MemoryLedger, name string) (models.ObjectID, models.ObjectID) {
	t.Helper()
	conf := a.mustSubmit(t, l, models.Intent{Kind: models.IntentVaultCreate, Name: name})
	vaultID, ok := conf.CreatedID(models.ObjectVault)
	require.True(t, ok)
	capID, ok := conf.CreatedID(models.ObjectCap)
	require.True(t, ok)
	return vaultID, capID
}

func (a actor) addItem(t *testing.T, l *MemoryLedger, vaultID, capID models.ObjectID, nonce []byte) models.ObjectID {
	t.Helper()
	conf := a.mustSubmit(t, l, models.Intent{
		Kind:    models.IntentVaultAddItem,
		VaultID: vaultID,
		CapID:   capID,
		Item:    &models.Item{Name: "mail", Category: models.CategoryLogin, Nonce: nonce, BlobRef: "b3:00"},
	})
	itemID, ok := conf.CreatedID(models.ObjectItem)
	require.True(t, ok)
	return itemID
}

// ── New ──────────────────────────────────────────────────────────────────────

func TestNew_MemoryBlobs(t *testing.T) {
	d, err := New(&config.DevnetConfig{KeyServers: 2}, clock.Real(), logger.Nop())

	require.NoError(t, err)
	assert.IsType(t, &store.MemoryBlobStorage{}, d.Blobs)
	assert.Equal(t, 2, d.Keys.Servers())
	assert.Equal(t, "dev", d.AppInfo.GetAppVersion(context.Background()))
}

func TestNew_FileBlobs(t *testing.T) {
	d, err := New(&config.DevnetConfig{KeyServers: 1, BlobDir: t.TempDir(), Version: "1.2.3"}, clock.Real(), logger.Nop())

	require.NoError(t, err)
	assert.IsType(t, &store.FileBlobStorage{}, d.Blobs)
	assert.Equal(t, "1.2.3", d.AppInfo.GetAppVersion(context.Background()))
}

func TestNew_NoKeyServers(t *testing.T) {
	_, err := New(&config.DevnetConfig{}, clock.Real(), logger.Nop())

	assert.ErrorIs(t, err, ErrNoKeyServers)
}

func TestAdapters_InProcess(t *testing.T) {
	d, err := New(&config.DevnetConfig{KeyServers: 1}, clock.Real(), logger.Nop())
	require.NoError(t, err)

	a := d.Adapters(nil)

	assert.Same(t, d.Ledger, a.Ledger)
	assert.Same(t, d.Keys, a.Keys)
	assert.IsType(t, &adapter.LogPublisher{}, a.Publisher)
}

// ── BlobStore ────────────────────────────────────────────────────────────────

func TestBlobStore_MapsStorageErrors(t *testing.T) {
	ctx := context.Background()
	files, err := store.NewFileBlobStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	b := BlobStore{Storage: files}

	ref, err := b.Put(ctx, []byte("sealed"))
	require.NoError(t, err)
	got, err := b.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), got)

	_, err = b.Get(ctx, crypto.BlobRefFor([]byte("other")))
	assert.ErrorIs(t, err, adapter.ErrNotFound)

	_, err = b.Get(ctx, "not-a-ref")
	assert.ErrorIs(t, err, adapter.ErrBadRequest)
}
