// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// mockWorker counts runs and blocks until its context is cancelled.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreStartedAndStopped(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	ws.Run(ctx)

	assert.Eventually(t, func() bool {
		return w1.runCount.Load() == 1 && w2.runCount.Load() == 1 && w3.runCount.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		ws.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after context cancellation")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()
	ws.Run(context.Background())
	ws.Wait()
}

func TestTickerWorker_RunsTaskUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	w := NewTickerWorker("test", 5*time.Millisecond, func(context.Context, time.Time) {
		calls.Add(1)
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	ws := NewWorkers(w)
	ws.Run(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	ws.Wait()

	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestNewTickerWorker_DefaultInterval(t *testing.T) {
	w := NewTickerWorker("test", 0, func(context.Context, time.Time) {}, logger.Nop())
	assert.Equal(t, time.Minute, w.interval)
}
