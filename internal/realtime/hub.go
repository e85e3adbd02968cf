// Package realtime fans page events out to subscribed widget connections.
// Rooms are keyed by page key; membership is implicit and best-effort. A
// client that joins after a publish simply misses it.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Subscriber is a connection the hub can deliver to. Send must be safe for
// concurrent use and must not block the hub.
type Subscriber interface {
	Send(data []byte) error
	Close() error
}

// Envelope is the wire shape of every pushed event.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks room membership and broadcasts events. All state lives behind a
// single RWMutex; publishes take a membership snapshot so slow connections
// never hold the lock.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Subscriber]struct{}
	// joined maps a connection back to its rooms so disconnect can clean up
	// without the caller naming them.
	joined map[Subscriber]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[Subscriber]struct{}),
		joined: make(map[Subscriber]map[string]struct{}),
	}
}

// Join adds the connection to the page's room, creating the room if absent.
// Joining twice is a no-op.
func (h *Hub) Join(sub Subscriber, pageKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[pageKey] == nil {
		h.rooms[pageKey] = make(map[Subscriber]struct{})
	}
	h.rooms[pageKey][sub] = struct{}{}

	if h.joined[sub] == nil {
		h.joined[sub] = make(map[string]struct{})
	}
	h.joined[sub][pageKey] = struct{}{}
}

// Unsubscribe removes the connection from every room it joined. Idempotent;
// called on disconnect.
func (h *Hub) Unsubscribe(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for pageKey := range h.joined[sub] {
		delete(h.rooms[pageKey], sub)
		if len(h.rooms[pageKey]) == 0 {
			delete(h.rooms, pageKey)
		}
	}
	delete(h.joined, sub)
}

// Publish delivers the event to every current subscriber of the page's room.
// Delivery is best-effort: failed sends are logged and the connection is
// dropped from all rooms. No subscribers is not an error.
func (h *Hub) Publish(pageKey, event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		log.Printf("[Hub] marshal event %s for room %s: %v", event, pageKey, err)
		return
	}

	h.mu.RLock()
	members := make([]Subscriber, 0, len(h.rooms[pageKey]))
	for sub := range h.rooms[pageKey] {
		members = append(members, sub)
	}
	h.mu.RUnlock()

	for _, sub := range members {
		if err := sub.Send(data); err != nil {
			log.Printf("[Hub] drop subscriber in room %s: %v", pageKey, err)
			h.Unsubscribe(sub)
			sub.Close()
		}
	}
}

// RoomSize reports current membership of a room.
func (h *Hub) RoomSize(pageKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[pageKey])
}
