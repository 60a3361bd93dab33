package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type httpBlobStore struct {
	client *utils.HTTPClient
	retry  retryPolicy
	logger *logger.Logger
}

type putBlobResponse struct {
	Ref models.BlobRef `json:"ref"`
}

// NewHTTPBlobStore constructs the REST client of the blob store.
func NewHTTPBlobStore(cfg config.ClientAdapter, log *logger.Logger) (BlobStore, error) {
	client, err := newRESTClient(cfg.BlobStoreAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid blob store address: %w", err)
	}
	return &httpBlobStore{client: client, retry: newRetryPolicy(cfg), logger: log}, nil
}

// Put implements [BlobStore]. The returned reference is checked against
// the locally computed content address.
func (b *httpBlobStore) Put(ctx context.Context, ciphertext []byte) (models.BlobRef, error) {
	var out putBlobResponse
	want := crypto.BlobRefFor(ciphertext)
	err := b.retry.do(ctx, func(ctx context.Context) error {
		resp, err := b.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/octet-stream").
			SetHeader(utils.BlobRefHeader, string(want)).
			SetBody(ciphertext).
			SetResult(&out).
			Put("/v1/blobs")
		if err != nil {
			return transportError("put blob", err)
		}
		return mapHTTPError(resp)
	})
	if err != nil {
		return "", err
	}
	if out.Ref != want {
		return "", fmt.Errorf("%w: blob store returned %s, want %s", ErrInvalidFormat, out.Ref, want)
	}
	return out.Ref, nil
}

// Get implements [BlobStore]. Content that does not hash to ref is
// reported as [ErrInvalidFormat].
func (b *httpBlobStore) Get(ctx context.Context, ref models.BlobRef) ([]byte, error) {
	var body []byte
	err := b.retry.do(ctx, func(ctx context.Context) error {
		resp, err := b.client.R().
			SetContext(ctx).
			SetPathParam("ref", string(ref)).
			Get("/v1/blobs/{ref}")
		if err != nil {
			return transportError("get blob", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if crypto.BlobRefFor(body) != ref {
		return nil, fmt.Errorf("%w: blob %s failed integrity check", ErrInvalidFormat, ref)
	}
	return body, nil
}
