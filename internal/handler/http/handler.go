package http

import (
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/devnet"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
)

// Handler serves the devnet collaborators over HTTP.
type Handler struct {
	ledger  adapter.Ledger
	keys    adapter.ThresholdService
	blobs   store.BlobStorage
	appInfo service.AppInfoService

	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler wires d behind the REST routes. A positive requestTimeout
// bounds every request.
func NewHandler(d *devnet.Devnet, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		ledger:         d.Ledger,
		keys:           d.Keys,
		blobs:          d.Blobs,
		appInfo:        d.AppInfo,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
