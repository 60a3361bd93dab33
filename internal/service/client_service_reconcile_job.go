package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
)

// DefaultReconcileInterval is used when Start gets a non-positive interval.
const DefaultReconcileInterval = 5 * time.Second

type reconcileJob struct {
	reconcile ReconcileService
	clock     clock.Clock

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconcileJob creates a reconcileJob that calls reconcile.Poll on a
// ticker. The job is idle until Start is called.
func NewReconcileJob(reconcile ReconcileService, clk clock.Clock) ReconcileJob {
	return &reconcileJob{reconcile: reconcile, clock: clk}
}

// Start implements ReconcileJob. It stops any previously running job, polls
// once, then polls on every tick. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *reconcileJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	t := j.clock.NewTicker(interval)
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		defer t.Stop()

		j.poll(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.poll(jobCtx)
			}
		}
	}()
}

func (j *reconcileJob) poll(ctx context.Context) {
	n, err := j.reconcile.Poll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.FromContext(ctx).Err(err).Str("func", "reconcileJob.poll").Int("applied", n).Msg("reconciliation failed")
		}
		return
	}
	if n > 0 {
		logger.FromContext(ctx).Debug().Str("func", "reconcileJob.poll").Int("applied", n).Msg("reconciled events")
	}
}

// Stop implements ReconcileJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Calling it on an
// idle job is a no-op.
func (j *reconcileJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
