package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrNoIdentity is returned when an operation needs a signing identity
	// and none is loaded.
	ErrNoIdentity = errors.New("no identity loaded")

	// ErrNoAccess is returned when the current identity neither holds the
	// Vault's Cap nor owns the Active Safe escrowing it.
	ErrNoAccess = errors.New("no access to vault")

	// ErrNoSafe is returned when neither the cache nor the ledger's event
	// history knows a Safe for the Vault.
	ErrNoSafe = errors.New("no safe for vault")

	// ErrSessionExpired is returned when the session key lapsed while a
	// decrypt request was being prepared.
	ErrSessionExpired = errors.New("session key expired")

	// ErrItemNotInVault is returned when an item id does not belong to the
	// Vault it was read through.
	ErrItemNotInVault = errors.New("item does not belong to vault")

	// ErrUnexpectedObject is returned when the ledger answers with an object
	// of another kind than requested.
	ErrUnexpectedObject = errors.New("unexpected ledger object kind")

	// ErrMissingCreatedObject is returned when a confirmation lacks the id
	// of the object the intent was supposed to create.
	ErrMissingCreatedObject = errors.New("confirmation does not name the created object")
)
