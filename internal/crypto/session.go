package crypto

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// RequestClaims bind one decrypt request to a session and approval digest.
type RequestClaims struct {
	ApprovalDigest string `json:"apd"`
	Scope          string `json:"scope"`
	jwt.RegisteredClaims
}

func signRequestToken(key models.SessionKey, approvalDigest []byte, now time.Time) (string, error) {
	claims := RequestClaims{
		ApprovalDigest: hex.EncodeToString(approvalDigest),
		Scope:          key.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   key.Address.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(key.ExpiresAt()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key.SessionPrivate)
	if err != nil {
		return "", fmt.Errorf("sign request token: %w", err)
	}
	return token, nil
}

// VerifySession checks that ev was minted by the identity it names and is
// still valid at now.
func VerifySession(ev models.SessionEvidence, now time.Time) error {
	if len(ev.IdentityKey) != ed25519.PublicKeySize || len(ev.SessionPublic) != ed25519.PublicKeySize {
		return ErrInvalidSignature
	}
	if AddressFromPublicKey(ev.IdentityKey) != ev.Address {
		return fmt.Errorf("%w: identity key does not match address", ErrInvalidSignature)
	}
	if !ed25519.Verify(ev.IdentityKey, ev.Challenge, ev.SignedChallenge) {
		return fmt.Errorf("%w: challenge", ErrInvalidSignature)
	}

	var c models.SessionChallenge
	if err := Unmarshal(ev.Challenge, &c); err != nil {
		return fmt.Errorf("%w: decode challenge: %v", ErrInvalidSignature, err)
	}
	if c.Address != ev.Address || c.Scope != ev.Scope || !bytes.Equal(c.SessionPublic, ev.SessionPublic) {
		return fmt.Errorf("%w: challenge does not match session", ErrInvalidSignature)
	}

	expires := time.UnixMilli(c.CreatedAtMs).Add(time.Duration(c.TTLMs) * time.Millisecond)
	if !now.Before(expires) {
		return fmt.Errorf("%w: session expired", ErrInvalidSignature)
	}
	return nil
}

// VerifyRequestToken checks the per-request token against the session's
// public key and the approval digest.
func VerifyRequestToken(token string, ev models.SessionEvidence, approvalDigest []byte, now time.Time) error {
	var claims RequestClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return ed25519.PublicKey(ev.SessionPublic), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithSubject(ev.Address.String()),
	)
	if err != nil {
		return fmt.Errorf("%w: request token: %v", ErrInvalidSignature, err)
	}
	if claims.ApprovalDigest != hex.EncodeToString(approvalDigest) {
		return ErrDigestMismatch
	}
	return nil
}

// OpenApproval verifies the digest and decodes the approval transaction.
func OpenApproval(ev models.ApprovalEvidence) (models.ApprovalTx, error) {
	if !bytes.Equal(ApprovalDigest(ev.Tx), ev.Digest) {
		return models.ApprovalTx{}, ErrDigestMismatch
	}
	var tx models.ApprovalTx
	if err := Unmarshal(ev.Tx, &tx); err != nil {
		return models.ApprovalTx{}, fmt.Errorf("decode approval tx: %w", err)
	}
	return tx, nil
}
