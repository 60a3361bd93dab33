package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// AppInfoService reports the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// SessionManager hands out a session key valid for the current identity,
// minting one (and prompting for a signature) only when the cached key is
// absent, expired or belongs to another identity.
type SessionManager interface {
	// Session returns a valid key. A refused prompt returns
	// adapter.ErrSignatureDenied and leaves the cache untouched.
	Session(ctx context.Context) (models.SessionKey, error)

	// Invalidate drops the cached key of the current identity.
	Invalidate(ctx context.Context) error
}

// AccessResolver finds how the current identity reaches a Vault.
type AccessResolver interface {
	// ResolveAccess consults the pairing cache, then the ledger.
	ResolveAccess(ctx context.Context, vaultID models.ObjectID) (models.AccessRoute, error)

	// Refresh ignores the cache, re-reads the ledger and rewrites the
	// cached pairing.
	Refresh(ctx context.Context, vaultID models.ObjectID) (models.AccessRoute, error)
}

// DecryptService reads item plaintext through the threshold key service.
type DecryptService interface {
	Decrypt(ctx context.Context, vaultID, itemID models.ObjectID) ([]byte, error)
}

// NewItem is the input of [VaultService.AddItem].
type NewItem struct {
	Name      string
	Category  models.ItemCategory
	Plaintext []byte
}

// VaultService creates Vaults and manages their items.
type VaultService interface {
	CreateVault(ctx context.Context, name string) (models.Pairing, error)
	AddItem(ctx context.Context, vaultID models.ObjectID, item NewItem) (models.Item, error)
	GetVault(ctx context.Context, vaultID models.ObjectID) (models.Vault, error)
	ListItems(ctx context.Context, vaultID models.ObjectID) ([]models.Item, error)
}

// SafeSettings configures a new Safe.
type SafeSettings struct {
	Guardians []models.Address
	Threshold int
	// Deadman is nil when no beneficiary is configured.
	Deadman *models.Deadman
}

// SafeService builds Safe intents, checks their preconditions against the
// current ledger snapshot and submits them.
type SafeService interface {
	CreateSafe(ctx context.Context, vaultID models.ObjectID, settings SafeSettings) (*models.Safe, error)
	GetSafe(ctx context.Context, safeID models.ObjectID) (*models.Safe, error)
	// LocateSafe finds the Safe of a Vault, falling back to the ledger's
	// event history when the cache has no (or a stale) Safe id.
	LocateSafe(ctx context.Context, vaultID models.ObjectID) (*models.Safe, error)

	Heartbeat(ctx context.Context, safeID models.ObjectID) error
	ApproveRecovery(ctx context.Context, safeID models.ObjectID, candidate models.Address) error
	Claim(ctx context.Context, safeID models.ObjectID) error
	UpdateDeadman(ctx context.Context, safeID models.ObjectID, deadman *models.Deadman) error
	UpdateGuardians(ctx context.Context, safeID models.ObjectID, guardians []models.Address, threshold int) error
	Disable(ctx context.Context, safeID models.ObjectID) error
}

// ReconcileService keeps the pairing cache in step with ledger events. It
// never writes to the ledger.
type ReconcileService interface {
	// Poll drains every watched event kind from its cursor and returns how
	// many events were applied.
	Poll(ctx context.Context) (int, error)

	// NewlyAvailable lists Vaults the identity gained through recovery or
	// a deadman claim and has not acknowledged.
	NewlyAvailable(ctx context.Context) ([]models.Pairing, error)

	// Acknowledge clears the newly-available mark of a Vault.
	Acknowledge(ctx context.Context, vaultID models.ObjectID) error
}

// ReconcileJob runs [ReconcileService.Poll] on a fixed interval.
type ReconcileJob interface {
	// Start launches the loop. Any previously running loop is stopped
	// first. A non-positive interval defaults to 5 seconds.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and waits for it to exit.
	Stop()
}
