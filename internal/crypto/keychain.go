// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/argon2"
)

// maxPlaintext bounds decompressed item size.
const maxPlaintext = 16 << 20

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewKeyChainService constructs a [KeyChainService] with the OWASP Argon2id
// parameters (1 pass, 64 MiB, 4 lanes, 32-byte key).
func NewKeyChainService() KeyChainService {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("crypto: zstd encoder initialization failed: " + err.Error())
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPlaintext))
	if err != nil {
		panic("crypto: zstd decoder initialization failed: " + err.Error())
	}

	return &keyChainService{
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		argonKeyLen:  32,
		encoder:      enc,
		decoder:      dec,
	}
}

func (k *keyChainService) GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

func (k *keyChainService) PolicyID(vaultID models.ObjectID, nonce []byte) []byte {
	return DerivePolicyID(vaultID, nonce)
}

func (k *keyChainService) NewSessionKeyPair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate session key: %w", err)
	}
	return pub, priv, nil
}

func (k *keyChainService) EncodeChallenge(c models.SessionChallenge) ([]byte, error) {
	b, err := Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode session challenge: %w", err)
	}
	return b, nil
}

func (k *keyChainService) BuildApproval(tx models.ApprovalTx) (models.ApprovalEvidence, error) {
	b, err := Marshal(tx)
	if err != nil {
		return models.ApprovalEvidence{}, fmt.Errorf("encode approval tx: %w", err)
	}
	return models.ApprovalEvidence{Tx: b, Digest: ApprovalDigest(b)}, nil
}

func (k *keyChainService) SignRequest(key models.SessionKey, approvalDigest []byte, now time.Time) (string, error) {
	return signRequestToken(key, approvalDigest, now)
}

// Compress implements [KeyChainService] with zstd.
func (k *keyChainService) Compress(plaintext []byte) ([]byte, error) {
	return k.encoder.EncodeAll(plaintext, make([]byte, 0, len(plaintext))), nil
}

// Decompress implements [KeyChainService]. Output larger than 16 MiB is
// rejected.
func (k *keyChainService) Decompress(payload []byte) ([]byte, error) {
	out, err := k.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	return out, nil
}

// GenerateKEK implements [KeyChainService]. The result exists only in
// memory.
func (k *keyChainService) GenerateKEK(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, k.argonTime, k.argonMemory, k.argonThreads, k.argonKeyLen)
}

// SealKey implements [KeyChainService]: blob = nonce ‖ AES-256-GCM(plain).
func (k *keyChainService) SealKey(plain, kek []byte) ([]byte, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return append(nonce, gcm.Seal(nil, nonce, plain, nil)...), nil
}

// OpenKey implements [KeyChainService]. A wrong KEK surfaces as
// [ErrWrongPassphrase].
func (k *keyChainService) OpenKey(sealed, kek []byte) ([]byte, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrWrongPassphrase
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plain, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
