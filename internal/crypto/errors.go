package crypto

import "errors"

var (
	// ErrMalformedPolicyID is returned when a policy id is too short to
	// carry a vault id and nonce.
	ErrMalformedPolicyID = errors.New("malformed policy id")
	// ErrInvalidSignature is returned when a signed challenge or request
	// token does not verify.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrDigestMismatch is returned when approval bytes do not hash to the
	// stated digest.
	ErrDigestMismatch = errors.New("approval digest mismatch")
	// ErrWrongPassphrase is returned when the keystore cannot be opened.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keystore")
)
