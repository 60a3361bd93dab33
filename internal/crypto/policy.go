package crypto

import "github.com/MKhiriev/go-safe-keeper/models"

// NonceSize is the length of an Item nonce.
const NonceSize = 16

// DerivePolicyID returns vaultID bytes followed by nonce. The vault prefix
// lets the key service recover which Vault governs the ciphertext.
func DerivePolicyID(vaultID models.ObjectID, nonce []byte) []byte {
	vb := vaultID.Bytes()
	out := make([]byte, 0, len(vb)+len(nonce))
	out = append(out, vb...)
	return append(out, nonce...)
}

// SplitPolicyID reverses DerivePolicyID.
func SplitPolicyID(policyID []byte) (models.ObjectID, []byte, error) {
	if len(policyID) <= 32 {
		return "", nil, ErrMalformedPolicyID
	}
	id, err := models.ParseObjectID(hexEncode(policyID[:32]))
	if err != nil {
		return "", nil, ErrMalformedPolicyID
	}
	return id, policyID[32:], nil
}
