package workers

import (
	"context"

	"francoggm/wiinpay-pix-relay/internal/app/workers/processors"

	"go.uber.org/zap"
)

type worker struct {
	id              int
	eventsCh        chan any
	eventsProcessor processors.Processor
	logger          *zap.Logger
}

func newWorker(id int, eventsCh chan any, eventsProcessor processors.Processor, logger *zap.Logger) *worker {
	return &worker{
		id:              id,
		eventsCh:        eventsCh,
		eventsProcessor: eventsProcessor,
		logger:          logger,
	}
}

// start drains eventsCh until ctx is done or the channel is closed. Failed
// events are logged and dropped.
func (w *worker) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.eventsCh:
			if !ok {
				return
			}

			if err := w.eventsProcessor.ProcessEvent(ctx, event); err != nil {
				w.logger.Warn("webhook_publish_error",
					zap.Int("worker", w.id),
					zap.Error(err),
				)
			}
		}
	}
}
