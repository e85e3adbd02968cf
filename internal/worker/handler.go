package worker

import (
	"context"
	"encoding/json"
	"log"

	"likebar/internal/queue"
)

// Handler applies relayed events to this instance's hub. The consumer group
// delivers each event to exactly one worker, which decouples the write request
// from websocket fan-out.
type Handler struct {
	hub queue.Broadcaster
}

func NewHandler(hub queue.Broadcaster) *Handler {
	return &Handler{hub: hub}
}

// Handle pushes one relayed event into the local hub. Unknown event types are
// forwarded as-is; the hub does not interpret them.
func (h *Handler) Handle(_ context.Context, event queue.RealtimeEvent) error {
	h.hub.Publish(event.PageKey, event.Type, json.RawMessage(event.Payload))
	log.Printf("[Worker] relayed %s to room %s", event.Type, event.PageKey)
	return nil
}
