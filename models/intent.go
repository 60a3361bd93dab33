package models

// IntentKind names a ledger entry point.
type IntentKind string

const (
	IntentVaultCreate         IntentKind = "vault.create"
	IntentVaultAddItem        IntentKind = "vault.addItem"
	IntentSafeCreate          IntentKind = "safe.create"
	IntentSafeHeartbeat       IntentKind = "safe.heartbeat"
	IntentSafeApproveRecovery IntentKind = "safe.approveRecovery"
	IntentSafeClaim           IntentKind = "safe.claim"
	IntentSafeUpdateDeadman   IntentKind = "safe.updateDeadman"
	IntentSafeUpdateGuardians IntentKind = "safe.updateGuardians"
	IntentSafeDisable         IntentKind = "safe.disable"
)

// Intent is one atomic state change submitted to the ledger. Fields unused
// by Kind are left zero.
type Intent struct {
	Kind           IntentKind `json:"kind"`
	Sender         Address    `json:"sender"`
	IdempotencyKey string     `json:"idempotency_key"`

	VaultID   ObjectID  `json:"vault_id,omitempty"`
	CapID     ObjectID  `json:"cap_id,omitempty"`
	SafeID    ObjectID  `json:"safe_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Item      *Item     `json:"item,omitempty"`
	Candidate Address   `json:"candidate,omitempty"`
	Guardians []Address `json:"guardians,omitempty"`
	Threshold int       `json:"threshold,omitempty"`
	Deadman   *Deadman  `json:"deadman,omitempty"`
}

// ObjectKind tags ledger object snapshots.
type ObjectKind string

const (
	ObjectVault ObjectKind = "vault"
	ObjectCap   ObjectKind = "cap"
	ObjectSafe  ObjectKind = "safe"
	ObjectItem  ObjectKind = "item"
)

// CreatedObject reports an object minted by a confirmed intent.
type CreatedObject struct {
	Kind ObjectKind `json:"kind"`
	ID   ObjectID   `json:"id"`
}

// Confirmation is the ledger's answer to an accepted intent.
type Confirmation struct {
	Digest  string          `json:"digest"`
	Events  []Event         `json:"events"`
	Created []CreatedObject `json:"created,omitempty"`
}

// CreatedID returns the id of the first created object of kind.
func (c Confirmation) CreatedID(kind ObjectKind) (ObjectID, bool) {
	for _, o := range c.Created {
		if o.Kind == kind {
			return o.ID, true
		}
	}
	return "", false
}

// Rejection is the body the ledger returns when it refuses an intent.
type Rejection struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

// Object is a ledger snapshot; exactly one payload field matches Kind.
type Object struct {
	ID      ObjectID   `json:"id"`
	Kind    ObjectKind `json:"kind"`
	Version uint64     `json:"version"`
	Vault   *Vault     `json:"vault,omitempty"`
	Cap     *Cap       `json:"cap,omitempty"`
	Safe    *Safe      `json:"safe,omitempty"`
	Item    *Item      `json:"item,omitempty"`
}

// SignedIntent is an Intent plus the sender's signature over its encoding.
type SignedIntent struct {
	Intent    Intent `json:"intent"`
	PublicKey []byte `json:"public_key"`
	Signature []byte `json:"signature"`
}
