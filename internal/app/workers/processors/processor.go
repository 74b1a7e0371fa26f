package processors

import "context"

// Processor handles a single event pulled off a worker queue.
type Processor interface {
	ProcessEvent(ctx context.Context, event any) error
}
