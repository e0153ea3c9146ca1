// Package mq moves order events off the request path and out to the
// operator feed and Redis.
package mq

import (
	"context"
	"log"
	"sync"

	"dashmart/models"
)

// OrderEventsChannel is the Redis pub/sub channel order events go to.
const OrderEventsChannel = "order-events"

// Sink is one destination for order events.
type Sink interface {
	Deliver(ctx context.Context, ev models.OrderEvent) error
}

// Emitter buffers events and hands them to every sink from a single worker,
// so sinks see events in emission order.
type Emitter struct {
	queue chan models.OrderEvent
	sinks []Sink

	mu      sync.Mutex
	dropped int
}

func NewEmitter(buffer int, sinks ...Sink) *Emitter {
	if buffer < 1 {
		buffer = 1
	}
	return &Emitter{queue: make(chan models.OrderEvent, buffer), sinks: sinks}
}

// Emit never blocks. When the buffer is full the event is dropped and logged.
func (e *Emitter) Emit(_ context.Context, ev models.OrderEvent) {
	select {
	case e.queue <- ev:
	default:
		e.mu.Lock()
		e.dropped++
		e.mu.Unlock()
		log.Printf("[Emit] queue full, dropped %s event for order %s", ev.Type, ev.Order.ID)
	}
}

// Dropped reports how many events were discarded.
func (e *Emitter) Dropped() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropped
}

// Run delivers events until ctx is done, then flushes what is already queued.
func (e *Emitter) Run(ctx context.Context) {
	for {
		select {
		case ev := <-e.queue:
			e.deliver(ctx, ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-e.queue:
					e.deliver(context.Background(), ev)
				default:
					return
				}
			}
		}
	}
}

func (e *Emitter) deliver(ctx context.Context, ev models.OrderEvent) {
	for _, s := range e.sinks {
		if err := s.Deliver(ctx, ev); err != nil {
			log.Printf("[Emit] %s event for order %s: %v", ev.Type, ev.Order.ID, err)
		}
	}
}
