package models

import "time"

// Pairing is the client's cached answer to "how does this identity reach
// this Vault". Reconciliation evicts or refreshes it; the ledger stays
// authoritative.
type Pairing struct {
	Address Address  `json:"address"`
	VaultID ObjectID `json:"vault_id"`
	CapID   ObjectID `json:"cap_id"`
	// SafeID is empty when the Cap is held directly.
	SafeID ObjectID `json:"safe_id,omitempty"`
	// NewlyAvailable marks access gained through recovery or a deadman
	// claim that the user has not looked at yet.
	NewlyAvailable bool      `json:"newly_available"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Route converts the pairing into an access route.
func (p Pairing) Route() AccessRoute {
	return AccessRoute{VaultID: p.VaultID, CapID: p.CapID, SafeID: p.SafeID, Holder: p.Address}
}
