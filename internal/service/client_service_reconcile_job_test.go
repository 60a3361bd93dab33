// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyReconcileService считает вызовы Poll.
type spyReconcileService struct {
	calls atomic.Int64
	err   error
}

func (s *spyReconcileService) Poll(context.Context) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func (s *spyReconcileService) NewlyAvailable(context.Context) ([]models.Pairing, error) {
	return nil, nil
}

func (s *spyReconcileService) Acknowledge(context.Context, models.ObjectID) error { return nil }

func waitCalls(t *testing.T, spy *spyReconcileService, n int64) {
	t.Helper()
	require.Eventually(t, func() bool { return spy.calls.Load() >= n }, time.Second, time.Millisecond)
}

// waitTicker blocks until the job's ticker is registered on clk.
func waitTicker(t *testing.T, clk *clock.FakeClock, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return clk.Tickers() == n }, time.Second, time.Millisecond)
}

// ── NewReconcileJob ──────────────────────────────────────────────────────────

func TestNewReconcileJob_ReturnsInterface(t *testing.T) {
	job := NewReconcileJob(&spyReconcileService{}, clock.Real())
	require.NotNil(t, job)

	var _ ReconcileJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestReconcileJob_PollsOnStartAndEveryTick(t *testing.T) {
	spy := &spyReconcileService{}
	clk := clock.NewFake(start)
	job := NewReconcileJob(spy, clk)

	job.Start(context.Background(), time.Second)
	defer job.Stop()
	waitCalls(t, spy, 1)

	for i := int64(2); i <= 4; i++ {
		clk.Advance(time.Second)
		waitCalls(t, spy, i)
	}
	assert.EqualValues(t, 4, spy.calls.Load())
}

func TestReconcileJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyReconcileService{}
	clk := clock.NewFake(start)
	job := NewReconcileJob(spy, clk)

	job.Start(context.Background(), time.Second)
	waitCalls(t, spy, 1)
	job.Stop()

	assert.Zero(t, clk.Tickers(), "ticker is released")
	clk.Advance(time.Minute)
	time.Sleep(10 * time.Millisecond)
	assert.EqualValues(t, 1, spy.calls.Load(), "после Stop новых вызовов быть не должно")
}

func TestReconcileJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewReconcileJob(&spyReconcileService{}, clock.Real())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestReconcileJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewReconcileJob(&spyReconcileService{}, clock.NewFake(start))

	job.Start(context.Background(), time.Second)
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}

func TestReconcileJob_DefaultInterval(t *testing.T) {
	spy := &spyReconcileService{}
	clk := clock.NewFake(start)
	job := NewReconcileJob(spy, clk)

	job.Start(context.Background(), 0)
	defer job.Stop()
	waitCalls(t, spy, 1)

	clk.Advance(DefaultReconcileInterval - time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.EqualValues(t, 1, spy.calls.Load())

	clk.Advance(time.Millisecond)
	waitCalls(t, spy, 2)
}

func TestReconcileJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyReconcileService{}
	clk := clock.NewFake(start)
	job := NewReconcileJob(spy, clk)
	ctx := context.Background()

	job.Start(ctx, time.Second)
	waitCalls(t, spy, 1)

	// Start повторно на том же job, внутри вызовет Stop()
	job.Start(ctx, time.Second)
	defer job.Stop()
	waitCalls(t, spy, 2)
	waitTicker(t, clk, 1)
}

func TestReconcileJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spyReconcileService{}
	job := NewReconcileJob(spy, clock.NewFake(start))
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, time.Second)
	waitCalls(t, spy, 1)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop завис после отмены контекста")
	}
}

func TestReconcileJob_PollError_DoesNotStopJob(t *testing.T) {
	spy := &spyReconcileService{err: assert.AnError}
	clk := clock.NewFake(start)
	job := NewReconcileJob(spy, clk)

	job.Start(context.Background(), time.Second)
	defer job.Stop()
	waitCalls(t, spy, 1)

	clk.Advance(time.Second)
	waitCalls(t, spy, 2)
}
