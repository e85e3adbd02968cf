package worker_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"likebar/internal/queue"
	"likebar/internal/worker"
)

// recordingBroadcaster collects events the workers push to the hub.
type recordingBroadcaster struct {
	mu        sync.Mutex
	published []string
}

func (r *recordingBroadcaster) Publish(pageKey, event string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, pageKey+"/"+event)
}

func (r *recordingBroadcaster) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.published...)
}

func setupTestRedis(t *testing.T) *redis.Client {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Failed to parse Redis URL: %v", err)
	}

	// Use DB 1 for testing to avoid conflicts with dev data
	opts.DB = 1

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping test: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestManager_RelaysPublishedEvents(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	hub := &recordingBroadcaster{}
	manager := worker.NewManager(
		queue.NewConsumer(client),
		worker.NewHandler(hub),
		worker.ManagerConfig{WorkerCount: 2, BatchSize: 5, BlockTimeout: 200 * time.Millisecond},
	)
	if err := manager.Start(ctx); err != nil {
		t.Fatalf("start manager: %v", err)
	}
	defer manager.Stop()

	publisher := queue.NewRedisPublisher(client)
	if _, err := publisher.Publish(ctx, queue.NewLikeUpdateEvent("blog-post-1", 2)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := publisher.Publish(ctx, queue.NewCommentUpdateEvent("blog-post-1", "User1", "hi")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if len(hub.snapshot()) >= 2 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	got := hub.snapshot()
	if len(got) != 2 {
		t.Fatalf("relayed %d events, want 2: %v", len(got), got)
	}
	seen := map[string]bool{}
	for _, e := range got {
		seen[e] = true
	}
	if !seen["blog-post-1/like_update"] || !seen["blog-post-1/comment_update"] {
		t.Errorf("relayed events = %v, want like_update and comment_update for blog-post-1", got)
	}
}
