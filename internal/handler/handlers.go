package handler

import (
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/devnet"
	"github.com/MKhiriev/go-safe-keeper/internal/handler/http"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(d *devnet.Devnet, cfg *config.DevnetConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(d, cfg.RequestTimeout, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
