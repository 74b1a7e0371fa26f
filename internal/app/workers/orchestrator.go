package workers

import (
	"context"
	"sync"

	"francoggm/wiinpay-pix-relay/internal/app/workers/processors"

	"go.uber.org/zap"
)

type Orchestrator struct {
	workers         []*worker
	eventsCh        chan any
	eventsProcessor processors.Processor
	wg              sync.WaitGroup
}

func NewOrchestrator(workersCount int, eventsCh chan any, eventsProcessor processors.Processor, logger *zap.Logger) *Orchestrator {
	var workers []*worker
	for id := range workersCount {
		worker := newWorker(id, eventsCh, eventsProcessor, logger)
		workers = append(workers, worker)
	}

	return &Orchestrator{
		workers:         workers,
		eventsCh:        eventsCh,
		eventsProcessor: eventsProcessor,
	}
}

func (o *Orchestrator) StartWorkers(ctx context.Context) {
	for _, worker := range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			worker.start(ctx)
		}()
	}
}

// Wait blocks until every worker has returned.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Drain closes the events channel and waits for the workers to process what
// is still buffered. It returns how many events were left when ctx expired.
// No producer may send on the channel once Drain is called.
func (o *Orchestrator) Drain(ctx context.Context) int {
	close(o.eventsCh)

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return 0
	case <-ctx.Done():
		return len(o.eventsCh)
	}
}
