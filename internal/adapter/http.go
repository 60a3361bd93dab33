// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/sethvargo/go-retry"
)

// Adapters groups the HTTP collaborators built from one config.
type Adapters struct {
	Ledger    Ledger
	Keys      ThresholdService
	Blobs     BlobStore
	Publisher EventPublisher
}

// NewHTTPAdapters builds the ledger, key service and blob store clients and
// the event publisher (Kafka when brokers are configured).
func NewHTTPAdapters(cfg config.ClientAdapter, events config.ClientEvents, log *logger.Logger) (*Adapters, error) {
	ledger, err := NewHTTPLedger(cfg, log)
	if err != nil {
		return nil, err
	}
	keys, err := NewHTTPThresholdService(cfg, log)
	if err != nil {
		return nil, err
	}
	blobs, err := NewHTTPBlobStore(cfg, log)
	if err != nil {
		return nil, err
	}

	var publisher EventPublisher
	if len(events.Brokers) > 0 {
		publisher, err = NewKafkaPublisher(KafkaConfig{Brokers: events.Brokers, Topic: events.Topic})
		if err != nil {
			return nil, err
		}
	} else {
		publisher = NewLogPublisher(log)
	}

	return &Adapters{Ledger: ledger, Keys: keys, Blobs: blobs, Publisher: publisher}, nil
}

// retryPolicy bounds resubmission of retryable failures.
type retryPolicy struct {
	attempts uint64
	base     time.Duration
}

func newRetryPolicy(cfg config.ClientAdapter) retryPolicy {
	p := retryPolicy{attempts: uint64(cfg.RetryAttempts), base: cfg.RetryBaseDelay}
	if p.base <= 0 {
		p.base = 200 * time.Millisecond
	}
	return p
}

// do runs fn, retrying with exponential backoff while the error is
// [IsRetryable]. Other errors are returned on the first failure.
func (p retryPolicy) do(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(p.attempts, retry.NewExponential(p.base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func newRESTClient(raw string, timeout time.Duration) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(raw)
	if err != nil {
		return nil, err
	}
	client := utils.NewHTTPClient()
	client.SetBaseURL(baseURL).SetTimeout(timeout)
	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
