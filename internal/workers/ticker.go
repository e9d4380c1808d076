// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// TickerWorker calls task every interval until its context is cancelled.
type TickerWorker struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context, now time.Time)
	logger   *logger.Logger
}

// NewTickerWorker returns a [Worker] running task on a ticker. A zero or
// negative interval defaults to one minute.
func NewTickerWorker(name string, interval time.Duration, task func(ctx context.Context, now time.Time), log *logger.Logger) *TickerWorker {
	if interval <= 0 {
		interval = time.Minute
	}

	return &TickerWorker{
		name:     name,
		interval: interval,
		task:     task,
		logger:   log,
	}
}

// Run implements [Worker].
func (w *TickerWorker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	w.logger.Info().Str("worker", w.name).Dur("interval", w.interval).Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("worker", w.name).Msg("worker stopped")
			return
		case now := <-t.C:
			w.task(ctx, now)
		}
	}
}
