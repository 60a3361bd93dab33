package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/app"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
)

var errorStatusMap = map[error]int{
	safe.ErrInvalidThreshold:         http.StatusBadRequest,
	safe.ErrMissingBeneficiaryPeriod: http.StatusBadRequest,
	safe.ErrDuplicateGuardian:        http.StatusBadRequest,
	safe.ErrInvalidCandidate:         http.StatusBadRequest,
	safe.ErrCapMismatch:              http.StatusBadRequest,
	safe.ErrUnauthorized:             http.StatusForbidden,
	safe.ErrNotAGuardian:             http.StatusForbidden,
	safe.ErrTooEarly:                 http.StatusUnprocessableEntity,
	safe.ErrAlreadyClaimed:           http.StatusUnprocessableEntity,
	safe.ErrNoCap:                    http.StatusUnprocessableEntity,
	safe.ErrSafeDisabled:             http.StatusUnprocessableEntity,

	adapter.ErrBadRequest:      http.StatusBadRequest,
	adapter.ErrNotFound:        http.StatusNotFound,
	adapter.ErrVersionConflict: http.StatusConflict,
	adapter.ErrInsufficientGas: http.StatusPaymentRequired,
	adapter.ErrInvalidFormat:   http.StatusUnprocessableEntity,
	adapter.ErrThresholdNotMet: http.StatusServiceUnavailable,
	adapter.ErrTransient:       http.StatusServiceUnavailable,

	store.ErrBlobNotFound:   http.StatusNotFound,
	store.ErrInvalidBlobRef: http.StatusBadRequest,
}

// storeReasons gives storage errors the reason the client adapters know.
var storeReasons = map[error]error{
	store.ErrBlobNotFound:   adapter.ErrNotFound,
	store.ErrInvalidBlobRef: adapter.ErrBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func rejectionFromError(err error) models.Rejection {
	for target, reason := range storeReasons {
		if errors.Is(err, target) {
			return models.Rejection{Reason: adapter.ReasonCode(reason), Message: err.Error()}
		}
	}
	if code := adapter.ReasonCode(err); code != "" {
		return models.Rejection{Reason: code, Message: err.Error()}
	}
	return models.Rejection{Message: app.MsgInternalServerError}
}

// writeError answers with the status and rejection body matching err.
// Unclassified errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", "writeError").Msg("unexpected error")
	}
	rej := rejectionFromError(err)
	annotate(r).reason = rej.Reason
	utils.WriteJSON(w, rej, status)
}
