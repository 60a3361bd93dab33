package identity

import "errors"

var (
	// ErrKeystoreExists is returned by [Keystore.Create] when the file is
	// already there.
	ErrKeystoreExists = errors.New("keystore already exists")
	// ErrKeystoreNotFound is returned when no keystore file exists.
	ErrKeystoreNotFound = errors.New("keystore not found")
	// ErrKeystoreCorrupt is returned when the file cannot be decoded or its
	// key does not match the recorded address.
	ErrKeystoreCorrupt = errors.New("keystore is corrupt")
	// ErrEmptyPassphrase is returned when creating a keystore without a
	// passphrase.
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")
)
