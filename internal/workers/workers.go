package workers

import (
	"context"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the client workers from the services.
func NewWorkers(services *service.ClientServices, cfg config.ClientWorkers) *Workers {
	return &Workers{workers: []Worker{
		&reconcileWorker{job: services.Job, cfg: cfg},
	}}
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error { return worker.Run(ctx) })
	}
	return g.Wait()
}

// reconcileWorker keeps the pairing cache in step with the ledger.
type reconcileWorker struct {
	job service.ReconcileJob
	cfg config.ClientWorkers
}

func (r *reconcileWorker) Run(ctx context.Context) error {
	logger.FromContext(ctx).Info().
		Str("func", "*reconcileWorker.Run").
		Dur("interval", r.cfg.PollInterval).
		Msg("reconciliation started")

	r.job.Start(ctx, r.cfg.PollInterval)
	<-ctx.Done()
	r.job.Stop()

	logger.FromContext(ctx).Info().Str("func", "*reconcileWorker.Run").Msg("reconciliation stopped")
	return nil
}
