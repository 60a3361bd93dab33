package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingSender   = errors.New("sender is required")
	ErrMissingVaultID  = errors.New("vault id is required")
	ErrMissingCapID    = errors.New("cap id is required")
	ErrMissingSafeID   = errors.New("safe id is required")
	ErrEmptyName       = errors.New("name is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrMissingItem     = errors.New("item is required")
	ErrInvalidCategory = errors.New("invalid item category")
	ErrEmptyNonce      = errors.New("item nonce is required")
	ErrEmptyBlobRef    = errors.New("item blob reference is required")
	ErrItemVaultID     = errors.New("item belongs to a different vault")
)
