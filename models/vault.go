package models

import (
	"slices"
	"time"
)

// ItemCategory classifies an Item for display. The ledger does not
// interpret it.
type ItemCategory string

const (
	CategoryLogin ItemCategory = "login"
	CategoryNote  ItemCategory = "note"
	CategoryCard  ItemCategory = "card"
	CategoryFile  ItemCategory = "file"
)

// BlobRef is an opaque pointer to ciphertext in the blob store.
type BlobRef string

// Vault is the container of encrypted items. Whoever holds CapID controls it.
type Vault struct {
	ID      ObjectID   `json:"id"`
	Name    string     `json:"name"`
	CapID   ObjectID   `json:"cap_id"`
	Items   []ObjectID `json:"items"`
	Version uint64     `json:"version"`
}

// HasItem reports whether itemID belongs to the vault.
func (v Vault) HasItem(itemID ObjectID) bool {
	return slices.Contains(v.Items, itemID)
}

// Item is one encrypted secret. Nonce feeds the policy id derivation and
// never changes after creation.
type Item struct {
	ID        ObjectID     `json:"id"`
	VaultID   ObjectID     `json:"vault_id"`
	Name      string       `json:"name"`
	Category  ItemCategory `json:"category"`
	Nonce     []byte       `json:"nonce"`
	BlobRef   BlobRef      `json:"blob_ref"`
	CreatedAt time.Time    `json:"created_at"`
}
