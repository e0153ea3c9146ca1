package mq

import (
	"context"
	"encoding/json"
	"log"

	"dashmart/models"

	"github.com/redis/go-redis/v9"
)

// StartOrderEventWorker forwards events published on channel to sink until
// ctx is done.
func StartOrderEventWorker(ctx context.Context, client *redis.Client, channel string, sink Sink) {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Printf("[OrderEventWorker] Listening on %q...", channel)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			forward(ctx, msg.Payload, sink)
		}
	}
}

func forward(ctx context.Context, payload string, sink Sink) {
	var ev models.OrderEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		log.Printf("[OrderEventWorker] Failed to parse event: %v", err)
		return
	}
	if err := sink.Deliver(ctx, ev); err != nil {
		log.Printf("[OrderEventWorker] deliver %s for order %s: %v", ev.Type, ev.Order.ID, err)
	}
}
