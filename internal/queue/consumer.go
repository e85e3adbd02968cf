package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one relayed event read from the stream.
type Message struct {
	ID    string
	Event RealtimeEvent
}

// Consumer reads relayed events for a worker.
type Consumer interface {
	// EnsureGroup creates the consumer group if it doesn't exist. Call once
	// at worker startup.
	EnsureGroup(ctx context.Context, stream, group string) error
	// Read blocks up to block waiting for new messages via XREADGROUP.
	Read(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]Message, error)
	// Ack removes processed messages from the pending list.
	Ack(ctx context.Context, stream, group string, messageIDs ...string) error
}

type RedisConsumer struct {
	client *redis.Client
}

func NewConsumer(client *redis.Client) Consumer {
	return &RedisConsumer{client: client}
}

// EnsureGroup creates the group with MKSTREAM starting at "$": relayed events
// are ephemeral, so a fresh worker only cares about new ones.
func (c *RedisConsumer) EnsureGroup(ctx context.Context, stream, group string) error {
	err := c.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			return nil
		}
		return fmt.Errorf("create consumer group: %w", err)
	}
	log.Printf("[Consumer] created group %s on %s", group, stream)
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]Message, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if err == redis.Nil {
		// Timeout, no new messages.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup: %w", err)
	}

	var messages []Message
	for _, s := range streams {
		for _, msg := range s.Messages {
			event, err := ParseRealtimeEvent(msg.Values)
			if err != nil {
				log.Printf("[Consumer] skip malformed message %s: %v", msg.ID, err)
				continue
			}
			messages = append(messages, Message{ID: msg.ID, Event: event})
		}
	}
	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, stream, group string, messageIDs ...string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := c.client.XAck(ctx, stream, group, messageIDs...).Err(); err != nil {
		return fmt.Errorf("xack: %w", err)
	}
	return nil
}
