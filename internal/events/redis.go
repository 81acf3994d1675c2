package events

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// DefaultChannel is the pub/sub channel for queue events.
const DefaultChannel = "nextcut:queue-events"

// RedisPublisher publishes events to a redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := Encode(e)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("events: redis publish: %w", err)
	}
	return nil
}

// Relay forwards every event on channel to dst until ctx is done.
func Relay(ctx context.Context, client *redis.Client, channel string, dst Publisher) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	// Wait for the subscription confirmation so no event published after
	// Relay starts is missed.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("events: subscribe %s: %w", channel, err)
	}
	log.Printf("relaying queue events from redis channel %s", channel)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			forward(ctx, []byte(msg.Payload), dst)
		}
	}
}

func forward(ctx context.Context, payload []byte, dst Publisher) {
	e, err := Decode(payload)
	if err != nil {
		log.Println("dropping queue event:", err)
		return
	}
	if err := dst.Publish(ctx, e); err != nil {
		log.Println("forwarding queue event:", err)
	}
}
