package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Event types pushed to widget rooms.
const (
	EventLikeUpdate    = "like_update"
	EventCommentUpdate = "comment_update"
)

// Stream and consumer group for the cross-process relay.
const (
	StreamRealtime        = "stream:realtime"
	ConsumerGroupRealtime = "realtime_workers"
)

// RealtimeEvent is one room-scoped event. Payload is the already-encoded data
// object pushed to subscribers, so the relay never needs to understand it.
type RealtimeEvent struct {
	Type      string          `json:"type"`
	PageKey   string          `json:"page_key"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// NewLikeUpdateEvent builds the event published after an accepted like.
func NewLikeUpdateEvent(pageKey string, likes int) RealtimeEvent {
	payload, _ := json.Marshal(map[string]int{"likes": likes})
	return RealtimeEvent{
		Type:      EventLikeUpdate,
		PageKey:   pageKey,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// NewCommentUpdateEvent builds the event published after a stored comment.
func NewCommentUpdateEvent(pageKey, name, comment string) RealtimeEvent {
	payload, _ := json.Marshal(map[string]string{"name": name, "comment": comment})
	return RealtimeEvent{
		Type:      EventCommentUpdate,
		PageKey:   pageKey,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// ToMap flattens the event into XADD field/value pairs.
func (e RealtimeEvent) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":      e.Type,
		"page_key":  e.PageKey,
		"payload":   string(e.Payload),
		"timestamp": strconv.FormatInt(e.Timestamp, 10),
	}
}

// ParseRealtimeEvent rebuilds an event from stream message values.
func ParseRealtimeEvent(values map[string]interface{}) (RealtimeEvent, error) {
	var e RealtimeEvent

	typ, ok := values["type"].(string)
	if !ok || typ == "" {
		return e, fmt.Errorf("event missing type")
	}
	pageKey, ok := values["page_key"].(string)
	if !ok || pageKey == "" {
		return e, fmt.Errorf("event missing page_key")
	}
	payload, _ := values["payload"].(string)

	e.Type = typ
	e.PageKey = pageKey
	e.Payload = json.RawMessage(payload)

	if ts, ok := values["timestamp"].(string); ok {
		e.Timestamp, _ = strconv.ParseInt(ts, 10, 64)
	}

	return e, nil
}
