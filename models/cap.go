package models

import (
	"encoding/json"
	"fmt"
)

// HoldingKind tags the two ways a Cap can be held.
type HoldingKind string

const (
	HoldingDirect   HoldingKind = "direct"
	HoldingEscrowed HoldingKind = "escrowed"
)

// Holding records who holds a Cap. It is one of HeldDirect or HeldEscrowed;
// there is no third state, so a Cap always has exactly one holder.
type Holding interface {
	Kind() HoldingKind
	isHolding()
}

// HeldDirect means an account holds the Cap in its own wallet.
type HeldDirect struct {
	Owner Address
}

// HeldEscrowed means the Cap sits inside a Safe and is controlled by the
// Safe's current owner.
type HeldEscrowed struct {
	SafeID ObjectID
}

func (HeldDirect) Kind() HoldingKind   { return HoldingDirect }
func (HeldEscrowed) Kind() HoldingKind { return HoldingEscrowed }
func (HeldDirect) isHolding()          {}
func (HeldEscrowed) isHolding()        {}

// Cap is the capability token over exactly one Vault.
type Cap struct {
	ID      ObjectID
	VaultID ObjectID
	Holder  Holding
}

// HeldDirectlyBy reports whether addr holds the Cap outside any Safe.
func (c Cap) HeldDirectlyBy(addr Address) bool {
	h, ok := c.Holder.(HeldDirect)
	return ok && h.Owner == addr
}

// EscrowedIn returns the Safe id holding the Cap, if any.
func (c Cap) EscrowedIn() (ObjectID, bool) {
	h, ok := c.Holder.(HeldEscrowed)
	return h.SafeID, ok
}

type capJSON struct {
	ID      ObjectID    `json:"id"`
	VaultID ObjectID    `json:"vault_id"`
	Holder  holdingJSON `json:"holder"`
}

type holdingJSON struct {
	Kind   HoldingKind `json:"kind"`
	Owner  Address     `json:"owner,omitempty"`
	SafeID ObjectID    `json:"safe_id,omitempty"`
}

func (c Cap) MarshalJSON() ([]byte, error) {
	out := capJSON{ID: c.ID, VaultID: c.VaultID}
	switch h := c.Holder.(type) {
	case HeldDirect:
		out.Holder = holdingJSON{Kind: HoldingDirect, Owner: h.Owner}
	case HeldEscrowed:
		out.Holder = holdingJSON{Kind: HoldingEscrowed, SafeID: h.SafeID}
	default:
		return nil, fmt.Errorf("marshal cap %s: %w", c.ID, ErrUnknownHolding)
	}
	return json.Marshal(out)
}

func (c *Cap) UnmarshalJSON(b []byte) error {
	var in capJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	c.ID, c.VaultID = in.ID, in.VaultID
	switch in.Holder.Kind {
	case HoldingDirect:
		c.Holder = HeldDirect{Owner: in.Holder.Owner}
	case HoldingEscrowed:
		c.Holder = HeldEscrowed{SafeID: in.Holder.SafeID}
	default:
		return fmt.Errorf("unmarshal cap %s: %w: %q", in.ID, ErrUnknownHolding, in.Holder.Kind)
	}
	return nil
}
