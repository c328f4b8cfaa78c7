// Package workers provides the background loops that keep the engine
// converged while the application runs: the scheduled queue drain and
// the periodic delta refresh.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's execution and returns immediately; the loop
// runs until the context is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
