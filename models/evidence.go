package models

import "time"

// AccessRoute names how a caller reaches a Vault's Cap: directly, or via
// ownership of the Safe escrowing it.
type AccessRoute struct {
	VaultID ObjectID `json:"vault_id"`
	CapID   ObjectID `json:"cap_id"`
	SafeID  ObjectID `json:"safe_id,omitempty"`
	Holder  Address  `json:"holder"`
}

// Escrowed reports whether access goes through a Safe.
func (r AccessRoute) Escrowed() bool { return r.SafeID != "" }

// ApproveFunction is the ledger entry point whose authorization rule the
// approval evidence simulates.
const ApproveFunction = "seal_approve"

// ApprovalTx is the unsubmitted ledger call proving access. It is encoded
// deterministically; the key service re-checks every field against the
// ledger before releasing shares.
type ApprovalTx struct {
	Function string   `json:"function"`
	PolicyID []byte   `json:"policy_id"`
	Sender   Address  `json:"sender"`
	VaultID  ObjectID `json:"vault_id"`
	ItemID   ObjectID `json:"item_id"`
	CapID    ObjectID `json:"cap_id"`
	SafeID   ObjectID `json:"safe_id,omitempty"`
}

// ApprovalEvidence carries the encoded ApprovalTx and its digest.
type ApprovalEvidence struct {
	Tx     []byte `json:"tx"`
	Digest []byte `json:"digest"`
}

// SessionEvidence is the part of a SessionKey sent to the key service.
// The private half never leaves the client; RequestToken proves possession.
type SessionEvidence struct {
	Address         Address       `json:"address"`
	Scope           string        `json:"scope"`
	CreatedAt       time.Time     `json:"created_at"`
	TTL             time.Duration `json:"ttl"`
	Challenge       []byte        `json:"challenge"`
	SignedChallenge []byte        `json:"signed_challenge"`
	IdentityKey     []byte        `json:"identity_key"`
	SessionPublic   []byte        `json:"session_public"`
	RequestToken    string        `json:"request_token"`
}

// EncryptRequest asks the key service to seal Plaintext under PolicyID.
type EncryptRequest struct {
	PolicyID  []byte `json:"policy_id"`
	Plaintext []byte `json:"plaintext"`
	Threshold int    `json:"threshold"`
}

// EncryptResponse carries the sealed bytes.
type EncryptResponse struct {
	Ciphertext []byte `json:"ciphertext"`
}

// DecryptRequest asks the key service to release plaintext.
type DecryptRequest struct {
	Ciphertext []byte           `json:"ciphertext"`
	Session    SessionEvidence  `json:"session"`
	Approval   ApprovalEvidence `json:"approval"`
}

// DecryptResponse carries the recovered plaintext.
type DecryptResponse struct {
	Plaintext []byte `json:"plaintext"`
}
