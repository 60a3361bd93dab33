package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/models"
)

const (
	keystoreVersion = 1
	saltSize        = 16
)

// keystoreFile is the on-disk layout. Address is readable without the
// passphrase.
type keystoreFile struct {
	Version   int            `json:"version"`
	Address   models.Address `json:"address"`
	PublicKey []byte         `json:"public_key"`
	Salt      []byte         `json:"salt"`
	Sealed    []byte         `json:"sealed"`
}

// Keystore reads and writes the sealed identity key at path.
type Keystore struct {
	path     string
	keyChain crypto.KeyChainService
}

func NewKeystore(path string, keyChain crypto.KeyChainService) *Keystore {
	return &Keystore{path: path, keyChain: keyChain}
}

func (k *Keystore) Path() string { return k.path }

// Create generates a new identity key and seals it under passphrase. An
// existing keystore is never overwritten.
func (k *Keystore) Create(passphrase string) (ed25519.PrivateKey, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if _, err := os.Stat(k.path); err == nil {
		return nil, ErrKeystoreExists
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate identity key: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	sealed, err := k.keyChain.SealKey(priv.Seed(), k.keyChain.GenerateKEK(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("seal identity key: %w", err)
	}

	data, err := json.MarshalIndent(keystoreFile{
		Version:   keystoreVersion,
		Address:   crypto.AddressFromPublicKey(pub),
		PublicKey: pub,
		Salt:      salt,
		Sealed:    sealed,
	}, "", "  ")
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(k.path); dir != "" {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create keystore dir: %w", err)
		}
	}
	f, err := os.OpenFile(k.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil, ErrKeystoreExists
	}
	if err != nil {
		return nil, fmt.Errorf("create keystore: %w", err)
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("write keystore: %w", err)
	}
	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("write keystore: %w", err)
	}
	return priv, nil
}

// Open unseals the identity key. A wrong passphrase returns
// crypto.ErrWrongPassphrase.
func (k *Keystore) Open(passphrase string) (ed25519.PrivateKey, error) {
	file, err := k.read()
	if err != nil {
		return nil, err
	}

	seed, err := k.keyChain.OpenKey(file.Sealed, k.keyChain.GenerateKEK(passphrase, file.Salt))
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, ErrKeystoreCorrupt
	}

	priv := ed25519.NewKeyFromSeed(seed)
	if crypto.AddressFromPublicKey(priv.Public().(ed25519.PublicKey)) != file.Address {
		return nil, ErrKeystoreCorrupt
	}
	return priv, nil
}

// Address reports the identity address without unsealing the key.
func (k *Keystore) Address() (models.Address, error) {
	file, err := k.read()
	if err != nil {
		return "", err
	}
	return file.Address, nil
}

func (k *Keystore) read() (keystoreFile, error) {
	data, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return keystoreFile{}, ErrKeystoreNotFound
	}
	if err != nil {
		return keystoreFile{}, fmt.Errorf("read keystore: %w", err)
	}

	var file keystoreFile
	if err = json.Unmarshal(data, &file); err != nil {
		return keystoreFile{}, fmt.Errorf("%w: %v", ErrKeystoreCorrupt, err)
	}
	if file.Version != keystoreVersion || len(file.Salt) == 0 || len(file.Sealed) == 0 || file.Address.IsZero() {
		return keystoreFile{}, ErrKeystoreCorrupt
	}
	return file, nil
}
