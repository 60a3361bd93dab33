// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	mu       sync.Mutex
	runCount int
	err      error
}

func (m *mockWorker) Run(ctx context.Context) error {
	m.mu.Lock()
	m.runCount++
	m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return nil
}

func (m *mockWorker) runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCount
}

// fakeJob records Start/Stop calls of a ReconcileJob.
type fakeJob struct {
	mu      sync.Mutex
	started chan time.Duration
	stopped bool
}

func (f *fakeJob) Start(_ context.Context, interval time.Duration) {
	f.started <- interval
}

func (f *fakeJob) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

var _ service.ReconcileJob = (*fakeJob)(nil)

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.runs() == 1 && w2.runs() == 1 && w3.runs() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	assert.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	idle := &mockWorker{}
	ws := &Workers{workers: []Worker{idle, &mockWorker{err: boom}}}

	err := ws.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, idle.runs())
}

func TestNewWorkers_ReconcileWorker(t *testing.T) {
	job := &fakeJob{started: make(chan time.Duration, 1)}
	ws := NewWorkers(&service.ClientServices{Job: job}, config.ClientWorkers{PollInterval: 3 * time.Second})
	require.Len(t, ws.workers, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	assert.Equal(t, 3*time.Second, <-job.started)
	cancel()
	require.NoError(t, <-done)

	job.mu.Lock()
	defer job.mu.Unlock()
	assert.True(t, job.stopped)
}
