package devnet

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() (*MemoryLedger, *clock.FakeClock) {
	clk := clock.NewFake(start)
	return NewMemoryLedger(clk), clk
}

func getObject(t *testing.T, l *MemoryLedger, id models.ObjectID) models.Object {
	t.Helper()
	obj, err := l.GetObject(context.Background(), id)
	require.NoError(t, err)
	return obj
}

// ── Submit ───────────────────────────────────────────────────────────────────

func TestSubmit_SignatureChecks(t *testing.T) {
	l, _ := newTestLedger()
	alice, mallory := newActor(t), newActor(t)

	tampered := alice.sign(t, models.Intent{Kind: models.IntentVaultCreate, Name: "a"})
	tampered.Intent.Name = "b"

	impersonated := mallory.sign(t, models.Intent{Kind: models.IntentVaultCreate, Name: "a"})
	impersonated.Intent.Sender = alice.addr

	shortKey := alice.sign(t, models.Intent{Kind: models.IntentVaultCreate, Name: "a"})
	shortKey.PublicKey = shortKey.PublicKey[:16]

	for name, in := range map[string]models.SignedIntent{
		"tampered":     tampered,
		"impersonated": impersonated,
		"short key":    shortKey,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := l.Submit(context.Background(), in)
			assert.ErrorIs(t, err, adapter.ErrUnauthorized)
		})
	}
}

func TestSubmit_RequiresIdempotencyKey(t *testing.T) {
	l, _ := newTestLedger()
	alice := newActor(t)

	in := models.Intent{Kind: models.IntentVaultCreate, Sender: alice.addr, Name: "a"}
	payload, err := crypto.Marshal(in)
	require.NoError(t, err)

	_, err = l.Submit(context.Background(), models.SignedIntent{
		Intent:    in,
		PublicKey: alice.pub,
		Signature: ed25519.Sign(alice.priv, payload),
	})

	assert.ErrorIs(t, err, adapter.ErrBadRequest)
}

func TestSubmit_ReplayReturnsFirstConfirmation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()
	alice := newActor(t)
	in := alice.sign(t, models.Intent{Kind: models.IntentVaultCreate, Name: "family", IdempotencyKey: "once"})

	first, err := l.Submit(ctx, in)
	require.NoError(t, err)
	second, err := l.Submit(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	batch, err := l.QueryEvents(ctx, models.EventVaultCreated, 0, 0)
	require.NoError(t, err)
	assert.Len(t, batch.Events, 1)
}

func TestSubmit_UnknownIntent(t *testing.T) {
	l, _ := newTestLedger()

	_, err := newActor(t).submit(t, l, models.Intent{Kind: "vault.burn"})

	assert.ErrorIs(t, err, adapter.ErrBadRequest)
}

// ── vaults and items ─────────────────────────────────────────────────────────

func TestCreateVault(t *testing.T) {
	l, _ := newTestLedger()
	alice := newActor(t)

	vaultID, capID := alice.createVault(t, l, "  family ")

	vault := getObject(t, l, vaultID)
	assert.Equal(t, models.ObjectVault, vault.Kind)
	assert.Equal(t, "family", vault.Vault.Name)
	assert.Equal(t, capID, vault.Vault.CapID)
	assert.Empty(t, vault.Vault.Items)

	capObj := getObject(t, l, capID)
	require.NotNil(t, capObj.Cap)
	assert.True(t, capObj.Cap.HeldDirectlyBy(alice.addr))
}

func TestCreateVault_EmptyName(t *testing.T) {
	l, _ := newTestLedger()

	_, err := newActor(t).submit(t, l, models.Intent{Kind: models.IntentVaultCreate, Name: "  "})

	assert.ErrorIs(t, err, adapter.ErrBadRequest)
}

func TestAddItem(t *testing.T) {
	l, _ := newTestLedger()
	alice := newActor(t)
	vaultID, capID := alice.createVault(t, l, "family")
	before := getObject(t, l, vaultID).Version

	itemID := alice.addItem(t, l, vaultID, capID, []byte("nonce-1"))

	vault := getObject(t, l, vaultID)
	assert.Equal(t, []models.ObjectID{itemID}, vault.Vault.Items)
	assert.Greater(t, vault.Version, before)

	item := getObject(t, l, itemID)
	require.NotNil(t, item.Item)
	assert.Equal(t, vaultID, item.Item.VaultID)
	assert.Equal(t, []byte("nonce-1"), item.Item.Nonce)
	assert.Equal(t, start, item.Item.CreatedAt)
}

func TestAddItem_Rejections(t *testing.T) {
	l, _ := newTestLedger()
	alice, bob := newActor(t), newActor(t)
	vaultID, capID := alice.createVault(t, l, "family")
	_, otherCap := alice.createVault(t, l, "work")
	item := &models.Item{Name: "x", Nonce: []byte("n"), BlobRef: "b3:00"}

	tests := []struct {
		name    string
		by      actor
		in      models.Intent
		wantErr error
	}{
		{"stranger", bob, models.Intent{VaultID: vaultID, CapID: capID, Item: item}, adapter.ErrUnauthorized},
		{"foreign cap", alice, models.Intent{VaultID: vaultID, CapID: otherCap, Item: item}, adapter.ErrUnauthorized},
		{"unknown vault", alice, models.Intent{VaultID: models.MustObjectID("0x1"), CapID: capID, Item: item}, adapter.ErrNotFound},
		{"no nonce", alice, models.Intent{VaultID: vaultID, CapID: capID, Item: &models.Item{BlobRef: "b3:00"}}, adapter.ErrBadRequest},
		{"no item", alice, models.Intent{VaultID: vaultID, CapID: capID}, adapter.ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Kind = models.IntentVaultAddItem
			_, err := tt.by.submit(t, l, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Safe lifecycle ───────────────────────────────────────────────────────────

func TestSafe_RecoveryThroughIntents(t *testing.T) {
	l, _ := newTestLedger()
	owner, g1, g2, g3, fresh := newActor(t), newActor(t), newActor(t), newActor(t), newActor(t)
	vaultID, capID := owner.createVault(t, l, "family")

	conf := owner.mustSubmit(t, l, models.Intent{
		Kind:      models.IntentSafeCreate,
		VaultID:   vaultID,
		CapID:     capID,
		Guardians: []models.Address{g1.addr, g2.addr, g3.addr},
		Threshold: 2,
	})
	safeID, ok := conf.CreatedID(models.ObjectSafe)
	require.True(t, ok)

	escrowed, ok := getObject(t, l, capID).Cap.EscrowedIn()
	require.True(t, ok)
	assert.Equal(t, safeID, escrowed)

	vote := models.Intent{Kind: models.IntentSafeApproveRecovery, SafeID: safeID, Candidate: fresh.addr}
	conf = g1.mustSubmit(t, l, vote)
	require.Len(t, conf.Events, 1)
	assert.Equal(t, models.EventRecoveryVoteCast, conf.Events[0].Kind)

	// a repeated vote lands without events
	conf = g1.mustSubmit(t, l, vote)
	assert.Empty(t, conf.Events)

	conf = g2.mustSubmit(t, l, vote)
	require.Len(t, conf.Events, 2)
	assert.Equal(t, models.EventRecoveryExecuted, conf.Events[1].Kind)
	assert.Equal(t, fresh.addr, getObject(t, l, safeID).Safe.Owner)

	_, err := owner.submit(t, l, models.Intent{Kind: models.IntentSafeHeartbeat, SafeID: safeID})
	assert.ErrorIs(t, err, safe.ErrUnauthorized)
}

func TestSafe_DeadmanClaimThroughIntents(t *testing.T) {
	l, clk := newTestLedger()
	owner, heir := newActor(t), newActor(t)
	vaultID, capID := owner.createVault(t, l, "family")
	safeID, _ := owner.mustSubmit(t, l, models.Intent{
		Kind:    models.IntentSafeCreate,
		VaultID: vaultID,
		CapID:   capID,
		Deadman: &models.Deadman{Beneficiary: heir.addr, InactivityPeriod: 30 * 24 * time.Hour},
	}).CreatedID(models.ObjectSafe)

	clk.Advance(20 * 24 * time.Hour)
	owner.mustSubmit(t, l, models.Intent{Kind: models.IntentSafeHeartbeat, SafeID: safeID})

	clk.Advance(20 * 24 * time.Hour)
	_, err := heir.submit(t, l, models.Intent{Kind: models.IntentSafeClaim, SafeID: safeID})
	assert.ErrorIs(t, err, safe.ErrTooEarly)

	clk.Advance(10 * 24 * time.Hour)
	conf := heir.mustSubmit(t, l, models.Intent{Kind: models.IntentSafeClaim, SafeID: safeID})
	require.Len(t, conf.Events, 1)
	assert.Equal(t, models.EventDeadmanClaimed, conf.Events[0].Kind)

	assert.True(t, getObject(t, l, capID).Cap.HeldDirectlyBy(heir.addr))
	assert.Equal(t, models.SafeDeadmanClaimed, getObject(t, l, safeID).Safe.State())

	_, err = heir.submit(t, l, models.Intent{Kind: models.IntentSafeClaim, SafeID: safeID})
	assert.ErrorIs(t, err, safe.ErrAlreadyClaimed)
}

func TestSafe_CreateRejections(t *testing.T) {
	l, _ := newTestLedger()
	owner, bob := newActor(t), newActor(t)
	vaultID, capID := owner.createVault(t, l, "family")
	otherVault, _ := owner.createVault(t, l, "work")

	tests := []struct {
		name    string
		by      actor
		in      models.Intent
		wantErr error
	}{
		{"unknown cap", owner, models.Intent{VaultID: vaultID, CapID: models.MustObjectID("0x1")}, adapter.ErrNotFound},
		{"cap of another vault", owner, models.Intent{VaultID: otherVault, CapID: capID}, safe.ErrCapMismatch},
		{"not the holder", bob, models.Intent{VaultID: vaultID, CapID: capID}, safe.ErrUnauthorized},
		{"bad threshold", owner, models.Intent{VaultID: vaultID, CapID: capID, Guardians: []models.Address{bob.addr}, Threshold: 2}, safe.ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Kind = models.IntentSafeCreate
			_, err := tt.by.submit(t, l, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSafe_TransitionOnUnknownSafe(t *testing.T) {
	l, _ := newTestLedger()

	_, err := newActor(t).submit(t, l, models.Intent{Kind: models.IntentSafeDisable, SafeID: models.MustObjectID("0x5a")})

	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

// ── QueryEvents ──────────────────────────────────────────────────────────────

func TestQueryEvents_Paging(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()
	alice := newActor(t)
	for _, name := range []string{"a", "b", "c"} {
		alice.createVault(t, l, name)
	}

	page, err := l.QueryEvents(ctx, models.EventVaultCreated, 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Events, 2)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, page.Events[1].Sequence, page.NextCursor)

	page, err = l.QueryEvents(ctx, models.EventVaultCreated, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.False(t, page.HasNextPage)

	empty, err := l.QueryEvents(ctx, models.EventVaultCreated, page.NextCursor, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Events)
	assert.Equal(t, page.NextCursor, empty.NextCursor)
}

func TestQueryEvents_SequencesSpanKinds(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()
	alice := newActor(t)
	vaultID, capID := alice.createVault(t, l, "family")
	alice.addItem(t, l, vaultID, capID, []byte("n"))

	created, err := l.QueryEvents(ctx, models.EventVaultCreated, 0, 0)
	require.NoError(t, err)
	added, err := l.QueryEvents(ctx, models.EventVaultItemAdded, 0, 0)
	require.NoError(t, err)

	require.Len(t, created.Events, 1)
	require.Len(t, added.Events, 1)
	assert.Less(t, created.Events[0].Sequence, added.Events[0].Sequence)
}

// ── Authorize ────────────────────────────────────────────────────────────────

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()
	owner, bob := newActor(t), newActor(t)
	vaultID, capID := owner.createVault(t, l, "family")
	nonce := []byte("nonce-1")
	itemID := owner.addItem(t, l, vaultID, capID, nonce)
	_, otherCap := owner.createVault(t, l, "work")

	tx := func(mut func(*models.ApprovalTx)) models.ApprovalTx {
		out := models.ApprovalTx{
			Function: models.ApproveFunction,
			PolicyID: crypto.DerivePolicyID(vaultID, nonce),
			Sender:   owner.addr,
			VaultID:  vaultID,
			ItemID:   itemID,
			CapID:    capID,
		}
		if mut != nil {
			mut(&out)
		}
		return out
	}

	require.NoError(t, l.Authorize(ctx, tx(nil)))

	tests := []struct {
		name    string
		mut     func(*models.ApprovalTx)
		wantErr error
	}{
		{"other entry point", func(tx *models.ApprovalTx) { tx.Function = "transfer" }, adapter.ErrUnauthorized},
		{"stranger", func(tx *models.ApprovalTx) { tx.Sender = bob.addr }, adapter.ErrUnauthorized},
		{"foreign cap", func(tx *models.ApprovalTx) { tx.CapID = otherCap }, adapter.ErrUnauthorized},
		{"unknown vault", func(tx *models.ApprovalTx) { tx.VaultID = models.MustObjectID("0x1") }, adapter.ErrNotFound},
		{"item outside vault", func(tx *models.ApprovalTx) { tx.ItemID = models.MustObjectID("0x1") }, adapter.ErrUnauthorized},
		{"policy of another nonce", func(tx *models.ApprovalTx) { tx.PolicyID = crypto.DerivePolicyID(vaultID, []byte("x")) }, adapter.ErrUnauthorized},
		{"safe that does not exist", func(tx *models.ApprovalTx) { tx.SafeID = models.MustObjectID("0x5a") }, adapter.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, l.Authorize(ctx, tx(tt.mut)), tt.wantErr)
		})
	}
}

func TestAuthorize_FollowsEscrow(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()
	owner := newActor(t)
	vaultID, capID := owner.createVault(t, l, "family")
	nonce := []byte("nonce-1")
	itemID := owner.addItem(t, l, vaultID, capID, nonce)
	safeID, _ := owner.mustSubmit(t, l, models.Intent{Kind: models.IntentSafeCreate, VaultID: vaultID, CapID: capID}).
		CreatedID(models.ObjectSafe)

	direct := models.ApprovalTx{
		Function: models.ApproveFunction,
		PolicyID: crypto.DerivePolicyID(vaultID, nonce),
		Sender:   owner.addr,
		VaultID:  vaultID,
		ItemID:   itemID,
		CapID:    capID,
	}
	viaSafe := direct
	viaSafe.SafeID = safeID

	assert.ErrorIs(t, l.Authorize(ctx, direct), adapter.ErrUnauthorized, "cap is escrowed")
	assert.NoError(t, l.Authorize(ctx, viaSafe))

	owner.mustSubmit(t, l, models.Intent{Kind: models.IntentSafeDisable, SafeID: safeID})

	assert.NoError(t, l.Authorize(ctx, direct))
	assert.ErrorIs(t, l.Authorize(ctx, viaSafe), adapter.ErrUnauthorized, "safe is disabled")
}
