package adapter

import (
	"context"

	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// LogPublisher records produced events in the log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *logger.Logger
}

// NewLogPublisher returns a publisher writing to log.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

// Publish implements [EventPublisher].
func (p *LogPublisher) Publish(_ context.Context, events ...models.Event) error {
	for _, e := range events {
		p.logger.Info().
			Str("func", "*LogPublisher.Publish").
			Str("event_kind", string(e.Kind)).
			Str("safe_id", e.SafeID.String()).
			Str("vault_id", e.VaultID.String()).
			Uint64("sequence", uint64(e.Sequence)).
			Msg("event produced")
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
