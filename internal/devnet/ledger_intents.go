package devnet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// applyLocked dispatches one verified intent. On error nothing has been
// written.
func (l *MemoryLedger) applyLocked(in models.Intent) (models.Confirmation, error) {
	switch in.Kind {
	case models.IntentVaultCreate:
		return l.createVault(in)
	case models.IntentVaultAddItem:
		return l.addItem(in)
	case models.IntentSafeCreate:
		return l.createSafe(in)
	case models.IntentSafeHeartbeat,
		models.IntentSafeApproveRecovery,
		models.IntentSafeClaim,
		models.IntentSafeUpdateDeadman,
		models.IntentSafeUpdateGuardians,
		models.IntentSafeDisable:
		return l.transitionSafe(in)
	default:
		return models.Confirmation{}, fmt.Errorf("%w: unknown intent %q", adapter.ErrBadRequest, in.Kind)
	}
}

func (l *MemoryLedger) createVault(in models.Intent) (models.Confirmation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Confirmation{}, fmt.Errorf("%w: vault name is empty", adapter.ErrBadRequest)
	}

	vaultID, capID := l.newID(), l.newID()
	l.caps[capID] = &models.Cap{ID: capID, VaultID: vaultID, Holder: models.HeldDirect{Owner: in.Sender}}
	l.vaults[vaultID] = &models.Vault{ID: vaultID, Name: name, CapID: capID, Items: []models.ObjectID{}}
	l.touch(vaultID, capID)
	l.vaults[vaultID].Version = l.versions[vaultID]

	return models.Confirmation{
		Events: []models.Event{{
			Kind:      models.EventVaultCreated,
			VaultID:   vaultID,
			Owner:     in.Sender,
			Timestamp: l.clock.Now(),
		}},
		Created: []models.CreatedObject{
			{Kind: models.ObjectVault, ID: vaultID},
			{Kind: models.ObjectCap, ID: capID},
		},
	}, nil
}

func (l *MemoryLedger) addItem(in models.Intent) (models.Confirmation, error) {
	if in.Item == nil || len(in.Item.Nonce) == 0 || in.Item.BlobRef == "" {
		return models.Confirmation{}, fmt.Errorf("%w: item needs a nonce and a blob reference", adapter.ErrBadRequest)
	}
	if err := l.authorizeLocked(in.Sender, in.VaultID, in.CapID, in.SafeID); err != nil {
		return models.Confirmation{}, err
	}

	now := l.clock.Now()
	item := *in.Item
	item.ID = l.newID()
	item.VaultID = in.VaultID
	item.Nonce = bytes.Clone(in.Item.Nonce)
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	l.items[item.ID] = &item

	v := l.vaults[in.VaultID]
	v.Items = append(v.Items, item.ID)
	l.touch(item.ID, v.ID)
	v.Version = l.versions[v.ID]

	return models.Confirmation{
		Events: []models.Event{{
			Kind:      models.EventVaultItemAdded,
			VaultID:   v.ID,
			ItemID:    item.ID,
			Timestamp: now,
		}},
		Created: []models.CreatedObject{{Kind: models.ObjectItem, ID: item.ID}},
	}, nil
}

func (l *MemoryLedger) createSafe(in models.Intent) (models.Confirmation, error) {
	capToken, ok := l.caps[in.CapID]
	if !ok {
		return models.Confirmation{}, fmt.Errorf("%w: cap %s", adapter.ErrNotFound, in.CapID)
	}
	if capToken.VaultID != in.VaultID {
		return models.Confirmation{}, safe.ErrCapMismatch
	}

	id := l.newID()
	res, err := safe.Create(id, in.Sender, capToken, in.Guardians, in.Threshold, in.Deadman, l.clock.Now())
	if err != nil {
		return models.Confirmation{}, err
	}

	l.safes[id] = res.Safe
	escrowed := *res.Safe.Cap
	l.caps[escrowed.ID] = &escrowed
	l.touch(id, escrowed.ID)

	return models.Confirmation{
		Events:  res.Events,
		Created: []models.CreatedObject{{Kind: models.ObjectSafe, ID: id}},
	}, nil
}

func (l *MemoryLedger) transitionSafe(in models.Intent) (models.Confirmation, error) {
	cur, ok := l.safes[in.SafeID]
	if !ok {
		return models.Confirmation{}, fmt.Errorf("%w: safe %s", adapter.ErrNotFound, in.SafeID)
	}

	res, err := safe.Apply(cur, in, l.clock.Now())
	if err != nil {
		return models.Confirmation{}, err
	}
	if len(res.Events) == 0 {
		// a vote that already landed
		return models.Confirmation{Events: []models.Event{}}, nil
	}

	l.safes[cur.ID] = res.Safe
	l.touch(cur.ID)
	if res.Released != nil {
		released := *res.Released
		l.caps[released.ID] = &released
		l.touch(released.ID)
	}
	return models.Confirmation{Events: res.Events}, nil
}
