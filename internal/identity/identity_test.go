package identity

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeystore(t *testing.T) *Keystore {
	t.Helper()
	return NewKeystore(filepath.Join(t.TempDir(), "keys", "identity.key"), crypto.NewKeyChainService())
}

// ── Keystore ─────────────────────────────────────────────────────────────────

func TestKeystore_CreateOpen(t *testing.T) {
	ks := newTestKeystore(t)

	created, err := ks.Create("correct horse")
	require.NoError(t, err)

	opened, err := ks.Open("correct horse")
	require.NoError(t, err)
	assert.Equal(t, created, opened)

	addr, err := ks.Address()
	require.NoError(t, err)
	assert.Equal(t, crypto.AddressFromPublicKey(created.Public().(ed25519.PublicKey)), addr)

	info, err := os.Stat(ks.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestKeystore_WrongPassphrase(t *testing.T) {
	ks := newTestKeystore(t)
	_, err := ks.Create("correct horse")
	require.NoError(t, err)

	_, err = ks.Open("battery staple")

	assert.ErrorIs(t, err, crypto.ErrWrongPassphrase)
}

func TestKeystore_CreateRefusesOverwrite(t *testing.T) {
	ks := newTestKeystore(t)
	first, err := ks.Create("one")
	require.NoError(t, err)

	_, err = ks.Create("two")
	require.ErrorIs(t, err, ErrKeystoreExists)

	opened, err := ks.Open("one")
	require.NoError(t, err)
	assert.Equal(t, first, opened)
}

func TestKeystore_EmptyPassphrase(t *testing.T) {
	ks := newTestKeystore(t)

	_, err := ks.Create("")

	assert.ErrorIs(t, err, ErrEmptyPassphrase)
	_, statErr := os.Stat(ks.Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestKeystore_Missing(t *testing.T) {
	ks := newTestKeystore(t)

	_, err := ks.Open("anything")
	assert.ErrorIs(t, err, ErrKeystoreNotFound)

	_, err = ks.Address()
	assert.ErrorIs(t, err, ErrKeystoreNotFound)
}

func TestKeystore_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "garbage"},
		{"unknown version", `{"version":9,"address":"0x01","salt":"AQ==","sealed":"AQ=="}`},
		{"missing salt", `{"version":1,"address":"0x01","sealed":"AQ=="}`},
		{"missing address", `{"version":1,"salt":"AQ==","sealed":"AQ=="}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "identity.key")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := NewKeystore(path, crypto.NewKeyChainService()).Open("pw")

			assert.ErrorIs(t, err, ErrKeystoreCorrupt)
		})
	}
}

func TestKeystore_AddressMismatch(t *testing.T) {
	ks := newTestKeystore(t)
	_, err := ks.Create("pw")
	require.NoError(t, err)

	// swap in another identity's address
	data, err := os.ReadFile(ks.Path())
	require.NoError(t, err)
	addr, err := ks.Address()
	require.NoError(t, err)
	other := models.MustAddress("0xbeef")
	patched := []byte(strings.Replace(string(data), addr.String(), other.String(), 1))
	require.NoError(t, os.WriteFile(ks.Path(), patched, 0o600))

	_, err = ks.Open("pw")

	assert.ErrorIs(t, err, ErrKeystoreCorrupt)
}

// ── LocalIdentity ────────────────────────────────────────────────────────────

type scriptedApprover struct {
	answer bool
	err    error
	seen   []models.SignatureRequest
}

func (a *scriptedApprover) Approve(_ context.Context, req models.SignatureRequest) (bool, error) {
	a.seen = append(a.seen, req)
	return a.answer, a.err
}

func newKey(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return priv
}

func TestLocalIdentity_SignsWhenApproved(t *testing.T) {
	priv := newKey(t)
	approver := &scriptedApprover{answer: true}
	id := NewLocalIdentity(priv, approver)
	req := models.SignatureRequest{Purpose: models.PurposeSession, Payload: []byte("challenge"), Summary: "start session"}

	sig, err := id.RequestSignature(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, ed25519.Verify(id.PublicKey(), req.Payload, sig))
	assert.Equal(t, crypto.AddressFromPublicKey(id.PublicKey()), id.Address())
	require.Len(t, approver.seen, 1)
	assert.Equal(t, "start session", approver.seen[0].Summary)
}

func TestLocalIdentity_Denied(t *testing.T) {
	id := NewLocalIdentity(newKey(t), &scriptedApprover{answer: false})

	sig, err := id.RequestSignature(context.Background(), models.SignatureRequest{Payload: []byte("x")})

	assert.ErrorIs(t, err, adapter.ErrSignatureDenied)
	assert.Nil(t, sig)
}

func TestLocalIdentity_ApproverError(t *testing.T) {
	boom := errors.New("terminal gone")
	id := NewLocalIdentity(newKey(t), &scriptedApprover{err: boom})

	_, err := id.RequestSignature(context.Background(), models.SignatureRequest{Payload: []byte("x")})

	assert.ErrorIs(t, err, boom)
}

func TestLocalIdentity_CancelledContext(t *testing.T) {
	approver := &scriptedApprover{answer: true}
	id := NewLocalIdentity(newKey(t), approver)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := id.RequestSignature(ctx, models.SignatureRequest{Payload: []byte("x")})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, approver.seen)
}

func TestLocalIdentity_DefaultsToAutoApprove(t *testing.T) {
	id := NewLocalIdentity(newKey(t), nil)

	_, err := id.RequestSignature(context.Background(), models.SignatureRequest{Payload: []byte("x")})

	assert.NoError(t, err)
}

// blockingApprover records how many prompts are open at once.
type blockingApprover struct {
	open, peak atomic.Int32
}

func (a *blockingApprover) Approve(context.Context, models.SignatureRequest) (bool, error) {
	n := a.open.Add(1)
	for {
		p := a.peak.Load()
		if n <= p || a.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	a.open.Add(-1)
	return true, nil
}

func TestLocalIdentity_PromptsOneAtATime(t *testing.T) {
	approver := &blockingApprover{}
	id := NewLocalIdentity(newKey(t), approver)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := id.RequestSignature(context.Background(), models.SignatureRequest{Payload: []byte("x")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), approver.peak.Load())
}
