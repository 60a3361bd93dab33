package store

import "github.com/MKhiriev/go-safe-keeper/internal/crypto"

// SessionSealer encrypts session key payloads kept outside this machine.
type SessionSealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type aeadSessionSealer struct {
	keyChain crypto.KeyChainService
	key      []byte
}

// NewSessionSealer returns a [SessionSealer] using the keychain's
// AES-256-GCM sealing under key. See [crypto.SessionCacheKey].
func NewSessionSealer(keyChain crypto.KeyChainService, key []byte) SessionSealer {
	return &aeadSessionSealer{keyChain: keyChain, key: key}
}

func (s *aeadSessionSealer) Seal(plain []byte) ([]byte, error) {
	return s.keyChain.SealKey(plain, s.key)
}

func (s *aeadSessionSealer) Open(sealed []byte) ([]byte, error) {
	return s.keyChain.OpenKey(sealed, s.key)
}
