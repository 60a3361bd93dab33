package crypto

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/zeebo/blake3"
)

type domainKey [32]byte

// Domain keys for BLAKE3 keyed hashing, ASCII zero-padded to 32 bytes.
var (
	approvalDomain = domainKey{
		's', 'a', 'f', 'e', 'k', 'e', 'e', 'p', 'e', 'r', '.', 'a', 'p', 'p', 'r', 'o',
		'v', 'a', 'l', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	blobDomain = domainKey{
		's', 'a', 'f', 'e', 'k', 'e', 'e', 'p', 'e', 'r', '.', 'b', 'l', 'o', 'b', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	sessionCacheDomain = domainKey{
		's', 'a', 'f', 'e', 'k', 'e', 'e', 'p', 'e', 'r', '.', 's', 'e', 's', 's', 'i',
		'o', 'n', '-', 'c', 'a', 'c', 'h', 'e', 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// ed25519Flag prefixes the public key when deriving an address.
const ed25519Flag = 0x00

// AddressFromPublicKey derives the account address controlled by pub.
func AddressFromPublicKey(pub ed25519.PublicKey) models.Address {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, ed25519Flag)
	buf = append(buf, pub...)
	sum := blake3.Sum256(buf)
	return models.Address("0x" + hex.EncodeToString(sum[:]))
}

// BlobRefFor returns the content address of ciphertext. Blob stores key
// by it and readers re-check it after download.
func BlobRefFor(ciphertext []byte) models.BlobRef {
	sum := keyedHash(blobDomain, ciphertext)
	return models.BlobRef("b3:" + hex.EncodeToString(sum[:]))
}

// ApprovalDigest hashes encoded approval bytes.
func ApprovalDigest(tx []byte) []byte {
	sum := keyedHash(approvalDomain, tx)
	return sum[:]
}

// SessionCacheKey derives the 32-byte key that seals session keys cached
// in a shared store. Only the holder of identity can derive it.
func SessionCacheKey(identity ed25519.PrivateKey) []byte {
	sum := keyedHash(sessionCacheDomain, identity.Seed())
	return sum[:]
}

func keyedHash(key domainKey, data []byte) [32]byte {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("crypto: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
