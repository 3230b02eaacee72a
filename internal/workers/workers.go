// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background tasks side by side.
package workers

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/moya-list/internal/logger"
)

type namedWorker struct {
	name   string
	worker Worker
}

// Workers is a named set of workers started together.
type Workers struct {
	workers []namedWorker
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers a worker. It must be called before Run.
func (w *Workers) Add(name string, worker Worker) *Workers {
	w.workers = append(w.workers, namedWorker{name: name, worker: worker})
	return w
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and blocks until all of them have returned. The
// first failure cancels the others and is returned; a worker stopping
// because ctx was cancelled is not a failure.
func (w *Workers) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, nw := range w.workers {
		group.Go(func() error {
			w.logger.Debug().Str("worker", nw.name).Msg("worker started")

			err := nw.worker.Run(groupCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Err(err).Str("worker", nw.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", nw.name, err)
			}

			w.logger.Debug().Str("worker", nw.name).Msg("worker stopped")
			return nil
		})
	}

	return group.Wait()
}
