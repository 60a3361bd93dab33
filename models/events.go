package models

import "time"

// EventKind names a ledger event type.
type EventKind string

const (
	EventSafeCreated      EventKind = "safe.created"
	EventSafeHeartbeat    EventKind = "safe.heartbeat"
	EventRecoveryVoteCast EventKind = "safe.recoveryVoteCast"
	EventRecoveryExecuted EventKind = "safe.recoveryExecuted"
	EventDeadmanClaimed   EventKind = "safe.deadmanClaimed"
	EventSafeDisabled     EventKind = "safe.disabled"
	EventDeadmanUpdated   EventKind = "safe.deadmanUpdated"
	EventGuardiansUpdated EventKind = "safe.guardiansUpdated"
	EventVaultCreated     EventKind = "vault.created"
	EventVaultItemAdded   EventKind = "vault.itemAdded"
)

// Cursor is a position in the per-kind event stream. Zero means "from the
// beginning".
type Cursor uint64

// Event is a ledger event. Only the fields relevant to Kind are set:
//
//	safe.created          Owner
//	safe.heartbeat        Owner
//	safe.recoveryVoteCast Guardian, Candidate, Votes
//	safe.recoveryExecuted OldOwner, NewOwner
//	safe.deadmanClaimed   Beneficiary, PriorOwner
//	safe.disabled         Owner
type Event struct {
	Kind      EventKind `json:"kind"`
	Sequence  Cursor    `json:"sequence"`
	SafeID    ObjectID  `json:"safe_id,omitempty"`
	VaultID   ObjectID  `json:"vault_id,omitempty"`
	ItemID    ObjectID  `json:"item_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Owner       Address `json:"owner,omitempty"`
	OldOwner    Address `json:"old_owner,omitempty"`
	NewOwner    Address `json:"new_owner,omitempty"`
	Guardian    Address `json:"guardian,omitempty"`
	Candidate   Address `json:"candidate,omitempty"`
	Votes       int     `json:"votes,omitempty"`
	Beneficiary Address `json:"beneficiary,omitempty"`
	PriorOwner  Address `json:"prior_owner,omitempty"`
}

// EventBatch is one page of queryEvents.
type EventBatch struct {
	Events      []Event `json:"events"`
	NextCursor  Cursor  `json:"next_cursor"`
	HasNextPage bool    `json:"has_next_page"`
}
