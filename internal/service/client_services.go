package service

import (
	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/internal/validators"
)

type ClientServices struct {
	Sessions  SessionManager
	Access    AccessResolver
	Vaults    VaultService
	Safes     SafeService
	Decrypt   DecryptService
	Reconcile ReconcileService
	Job       ReconcileJob
}

func NewClientServices(
	storages *store.ClientStorages,
	adapters *adapter.Adapters,
	identity adapter.IdentityProvider,
	keyChain crypto.KeyChainService,
	clk clock.Clock,
	cfg *config.ClientConfig,
) *ClientServices {
	submitter := newIntentSubmitter(adapters.Ledger, identity, validators.NewIntentValidator(), adapters.Publisher)
	sessions := NewSessionManager(storages.Sessions, identity, keyChain, clk, cfg.App.Scope, cfg.App.SessionTTL)
	access := NewAccessResolver(adapters.Ledger, storages.Pairings, identity, clk)
	reconcile := NewReconcileService(adapters.Ledger, storages.Pairings, storages.Cursors, access, identity, clk, cfg.Workers.PageSize)

	return &ClientServices{
		Sessions:  sessions,
		Access:    access,
		Vaults:    newVaultService(submitter, adapters.Keys, adapters.Blobs, access, storages.Pairings, keyChain, clk, cfg.App.EncryptionThreshold),
		Safes:     newSafeService(submitter, storages.Pairings, clk, cfg.Workers.PageSize),
		Decrypt:   NewDecryptService(adapters.Ledger, adapters.Keys, adapters.Blobs, sessions, access, keyChain, clk),
		Reconcile: reconcile,
		Job:       NewReconcileJob(reconcile, clk),
	}
}
