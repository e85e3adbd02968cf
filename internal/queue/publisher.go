package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers realtime events toward room subscribers. Services treat
// publishing as best-effort: a failed publish is logged, never surfaced to
// the request that triggered it.
type Publisher interface {
	Publish(ctx context.Context, event RealtimeEvent) (messageID string, err error)
}

// Broadcaster is the local fan-out sink (the realtime hub).
type Broadcaster interface {
	Publish(pageKey, event string, payload interface{})
}

// LocalPublisher feeds the in-process hub directly. Used when no Redis is
// configured; a single instance needs no relay.
type LocalPublisher struct {
	hub Broadcaster
}

func NewLocalPublisher(hub Broadcaster) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(_ context.Context, event RealtimeEvent) (string, error) {
	p.hub.Publish(event.PageKey, event.Type, json.RawMessage(event.Payload))
	return "local", nil
}

// RedisPublisher relays events through a Redis stream so every instance's hub
// (including this one's) fans them out to its own subscribers.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, event RealtimeEvent) (string, error) {
	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamRealtime,
		Values: event.ToMap(),
	}).Result()
	if err != nil {
		log.Printf("[Publisher] publish failed: type=%s room=%s err=%v", event.Type, event.PageKey, err)
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	log.Printf("[Publisher] published: type=%s room=%s msgID=%s", event.Type, event.PageKey, messageID)
	return messageID, nil
}
