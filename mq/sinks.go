package mq

import (
	"context"
	"encoding/json"

	"dashmart/livefeed"
	"dashmart/models"

	"github.com/redis/go-redis/v9"
)

// HubSink pushes events to operator screens connected to this process.
type HubSink struct {
	Hub *livefeed.Hub
}

func (s HubSink) Deliver(_ context.Context, ev models.OrderEvent) error {
	data, err := livefeed.EncodeEvent(ev)
	if err != nil {
		return err
	}
	s.Hub.Broadcast(livefeed.RoomOps, data)
	return nil
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes events so every instance behind the load balancer sees
// them.
type RedisSink struct {
	Client  publisher
	Channel string
}

func NewRedisSink(client *redis.Client) RedisSink {
	return RedisSink{Client: client, Channel: OrderEventsChannel}
}

func (s RedisSink) Deliver(ctx context.Context, ev models.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Client.Publish(ctx, s.Channel, data).Err()
}
