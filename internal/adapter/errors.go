package adapter

import (
	"errors"

	"github.com/MKhiriev/go-safe-keeper/internal/safe"
)

var (
	// ErrUnauthorized is the Safe rule error; the ledger and the key service
	// report evidence rejections with it too.
	ErrUnauthorized = safe.ErrUnauthorized
	// ErrVersionConflict means the ledger object changed under the intent.
	// The intent may be resubmitted.
	ErrVersionConflict = errors.New("version conflict")
	// ErrInsufficientGas means the sender cannot pay for the intent.
	ErrInsufficientGas = errors.New("insufficient gas")
	// ErrNotFound means the requested object or blob does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest means the collaborator could not parse the request.
	ErrBadRequest = errors.New("bad request")
	// ErrTransient wraps network failures and 5xx answers without a known
	// reason. It is the only infrastructure error retried automatically.
	ErrTransient = errors.New("transient collaborator failure")
	// ErrThresholdNotMet means too few key servers answered.
	ErrThresholdNotMet = errors.New("threshold not met")
	// ErrInvalidFormat means the ciphertext or blob is malformed.
	ErrInvalidFormat = errors.New("invalid ciphertext format")
	// ErrSignatureDenied means the user refused a signature prompt.
	ErrSignatureDenied = errors.New("signature request denied")
)

var reasonCodes = map[error]string{
	ErrVersionConflict: "VersionConflict",
	ErrInsufficientGas: "InsufficientGas",
	ErrNotFound:        "NotFound",
	ErrBadRequest:      "BadRequest",
	ErrTransient:       "Transient",
	ErrThresholdNotMet: "ThresholdNotMet",
	ErrInvalidFormat:   "InvalidFormat",
	ErrSignatureDenied: "SignatureDenied",
}

// ReasonCode returns the wire reason for err across the Safe rule errors
// and the collaborator errors.
func ReasonCode(err error) string {
	if code := safe.ReasonCode(err); code != "" {
		return code
	}
	for sentinel, code := range reasonCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// ErrorForReason maps a wire reason back to its sentinel, or nil.
func ErrorForReason(code string) error {
	if err := safe.FromReasonCode(code); err != nil {
		return err
	}
	for sentinel, c := range reasonCodes {
		if c == code {
			return sentinel
		}
	}
	return nil
}

// IsRetryable reports whether err may succeed when the same request is
// sent again. Rule violations, authorization and crypto failures never are.
// Neither is [ErrVersionConflict]: the signed intent must be rebuilt.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
