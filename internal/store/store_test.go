package store

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var (
	alice   = models.MustAddress("0xa1")
	bob     = models.MustAddress("0xb0")
	vaultID = models.MustObjectID("0x7a")
	capID   = models.MustObjectID("0xca")
	safeID  = models.MustObjectID("0x5a")
	created = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
)

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

// newDBFromSQL wraps a sqlmock connection as a postgres-dialect DB so
// placeholders render as $n and pg errors are classified.
func newDBFromSQL(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{
		DB:                 conn,
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

// newSQLiteDB opens a migrated SQLite cache in a temp dir.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnectSQLite(testContext(), clientDBConfig(t), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func clientDBConfig(t *testing.T) config.ClientDB {
	return config.ClientDB{DSN: filepath.Join(t.TempDir(), "cache", "safekeeper.db")}
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func newSessionKey(t *testing.T, address models.Address, ttl time.Duration) models.SessionKey {
	t.Helper()
	idPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sPub, sPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return models.SessionKey{
		Address:         address,
		Scope:           "vault",
		CreatedAt:       created,
		TTL:             ttl,
		Challenge:       []byte("challenge"),
		SignedChallenge: []byte("signature"),
		IdentityKey:     idPub,
		SessionPublic:   sPub,
		SessionPrivate:  sPriv,
	}
}

func requireSameSessionKey(t *testing.T, want, got models.SessionKey) {
	t.Helper()
	require.Equal(t, want.Address, got.Address)
	require.Equal(t, want.Scope, got.Scope)
	require.True(t, want.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, want.TTL, got.TTL)
	require.Equal(t, want.Challenge, got.Challenge)
	require.Equal(t, want.SignedChallenge, got.SignedChallenge)
	require.Equal(t, want.IdentityKey, got.IdentityKey)
	require.Equal(t, want.SessionPublic, got.SessionPublic)
	require.Equal(t, want.SessionPrivate, got.SessionPrivate)
}

