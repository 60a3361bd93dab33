package models

import (
	"crypto/ed25519"
	"time"
)

// SessionKey is the cached proof that an identity approved decryption
// within Scope for TTL. It lives on the client only.
type SessionKey struct {
	Address   Address       `json:"address"`
	Scope     string        `json:"scope"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`

	// Challenge is the exact byte string the identity signed.
	Challenge []byte `json:"challenge"`
	// SignedChallenge is the identity's signature over Challenge.
	SignedChallenge []byte `json:"signed_challenge"`
	// IdentityKey verifies SignedChallenge; it also derives Address.
	IdentityKey ed25519.PublicKey `json:"identity_key"`

	// SessionPublic/SessionPrivate are the ephemeral key pair certified by
	// the challenge. Requests are signed with SessionPrivate.
	SessionPublic  ed25519.PublicKey  `json:"session_public"`
	SessionPrivate ed25519.PrivateKey `json:"session_private"`
}

// ExpiresAt is CreatedAt + TTL.
func (k SessionKey) ExpiresAt() time.Time {
	return k.CreatedAt.Add(k.TTL)
}

// ValidFor reports whether the key may be reused by identity at now.
func (k SessionKey) ValidFor(identity Address, now time.Time) bool {
	return k.Address != "" && k.Address == identity && now.Before(k.ExpiresAt())
}

// SessionChallenge is the structure the identity signs when a session is
// minted. It is encoded deterministically before signing.
type SessionChallenge struct {
	Scope         string            `json:"scope"`
	Address       Address           `json:"address"`
	SessionPublic ed25519.PublicKey `json:"session_public"`
	CreatedAtMs   int64             `json:"created_at_ms"`
	TTLMs         int64             `json:"ttl_ms"`
}
