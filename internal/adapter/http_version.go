package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
)

// ServerVersion asks the gateway behind cfg.LedgerAddress for its build
// version. It is not retried.
func ServerVersion(ctx context.Context, cfg config.ClientAdapter) (string, error) {
	client, err := newRESTClient(cfg.LedgerAddress, cfg.RequestTimeout)
	if err != nil {
		return "", fmt.Errorf("invalid ledger address: %w", err)
	}

	resp, err := client.R().SetContext(ctx).Get("/v1/version")
	if err != nil {
		return "", transportError("get version", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}
