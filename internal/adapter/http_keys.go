package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type httpThresholdService struct {
	client *utils.HTTPClient
	retry  retryPolicy
	logger *logger.Logger
}

// NewHTTPThresholdService constructs the REST client of the key service.
func NewHTTPThresholdService(cfg config.ClientAdapter, log *logger.Logger) (ThresholdService, error) {
	client, err := newRESTClient(cfg.KeyServiceAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid key service address: %w", err)
	}
	return &httpThresholdService{client: client, retry: newRetryPolicy(cfg), logger: log}, nil
}

// Encrypt implements [ThresholdService].
func (h *httpThresholdService) Encrypt(ctx context.Context, req models.EncryptRequest) ([]byte, error) {
	var out models.EncryptResponse
	err := h.retry.do(ctx, func(ctx context.Context) error {
		resp, err := h.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&out).
			Post("/v1/keys/encrypt")
		if err != nil {
			return transportError("encrypt", err)
		}
		return mapHTTPError(resp)
	})
	if err != nil {
		return nil, err
	}
	return out.Ciphertext, nil
}

// Decrypt implements [ThresholdService]. The request token travels in the
// Authorization header as well as in the evidence.
func (h *httpThresholdService) Decrypt(ctx context.Context, req models.DecryptRequest) ([]byte, error) {
	var out models.DecryptResponse
	err := h.retry.do(ctx, func(ctx context.Context) error {
		resp, err := h.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(req.Session.RequestToken).
			SetBody(req).
			SetResult(&out).
			Post("/v1/keys/decrypt")
		if err != nil {
			return transportError("decrypt", err)
		}
		return mapHTTPError(resp)
	})
	if err != nil {
		return nil, err
	}
	return out.Plaintext, nil
}
