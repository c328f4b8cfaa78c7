package workers

import "context"

type Workers struct {
	workers []Worker
}

func NewWorkers(all ...Worker) *Workers {
	return &Workers{workers: all}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
