package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type httpLedger struct {
	client *utils.HTTPClient
	retry  retryPolicy
	logger *logger.Logger
}

// NewHTTPLedger constructs the REST client of the ledger gateway.
func NewHTTPLedger(cfg config.ClientAdapter, log *logger.Logger) (Ledger, error) {
	client, err := newRESTClient(cfg.LedgerAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger address: %w", err)
	}
	return &httpLedger{client: client, retry: newRetryPolicy(cfg), logger: log}, nil
}

// Submit implements [Ledger]. Transient failures and version conflicts are
// retried; the idempotency key keeps a landed intent from applying twice.
func (l *httpLedger) Submit(ctx context.Context, in models.SignedIntent) (models.Confirmation, error) {
	var conf models.Confirmation
	err := l.retry.do(ctx, func(ctx context.Context) error {
		resp, err := l.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader(utils.IdempotencyKeyHeader, in.Intent.IdempotencyKey).
			SetBody(in).
			SetResult(&conf).
			Post("/v1/ledger/intents")
		if err != nil {
			return transportError("submit intent", err)
		}
		return mapHTTPError(resp)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*httpLedger.Submit").
			Str("intent", string(in.Intent.Kind)).
			Msg("intent rejected")
		return models.Confirmation{}, err
	}
	return conf, nil
}

// GetObject implements [Ledger].
func (l *httpLedger) GetObject(ctx context.Context, id models.ObjectID) (models.Object, error) {
	var obj models.Object
	err := l.retry.do(ctx, func(ctx context.Context) error {
		resp, err := l.client.R().
			SetContext(ctx).
			SetPathParam("id", id.String()).
			SetResult(&obj).
			Get("/v1/ledger/objects/{id}")
		if err != nil {
			return transportError("get object", err)
		}
		return mapHTTPError(resp)
	})
	if err != nil {
		return models.Object{}, err
	}
	return obj, nil
}

// QueryEvents implements [Ledger].
func (l *httpLedger) QueryEvents(ctx context.Context, kind models.EventKind, cursor models.Cursor, limit int) (models.EventBatch, error) {
	var batch models.EventBatch
	err := l.retry.do(ctx, func(ctx context.Context) error {
		resp, err := l.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"kind":   string(kind),
				"cursor": strconv.FormatUint(uint64(cursor), 10),
				"limit":  strconv.Itoa(limit),
			}).
			SetResult(&batch).
			Get("/v1/ledger/events")
		if err != nil {
			return transportError("query events", err)
		}
		return mapHTTPError(resp)
	})
	if err != nil {
		return models.EventBatch{}, err
	}
	return batch, nil
}
