package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSessionNotFound is returned when no session key is cached for the
	// address and scope.
	ErrSessionNotFound = errors.New("session key not found")

	// ErrPairingNotFound is returned when no pairing is cached for the
	// address and vault.
	ErrPairingNotFound = errors.New("pairing not found")

	// ErrBlobNotFound is returned by blob storages for unknown references.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrInvalidBlobRef is returned when a reference is not a content
	// address this store can map to a file name.
	ErrInvalidBlobRef = errors.New("invalid blob reference")

	// ErrSessionSealerRequired is returned when a shared session cache is
	// configured without a key to seal its values.
	ErrSessionSealerRequired = errors.New("redis session cache requires a sealing key")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query or statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
