package redis

import (
	"context"
	"encoding/json"

	"commissions/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// EventPublisher fans order events out as JSON on EventsChannel.
type EventPublisher struct {
	client  publisher
	channel string
}

func NewEventPublisher(client publisher) *EventPublisher {
	return &EventPublisher{client: client, channel: EventsChannel}
}

func (p *EventPublisher) Dispatch(ctx context.Context, event ports.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
