package domain

import "encoding/json"

// Message is one topic-addressed wire frame. Event and Fields are flattened
// into a single JSON object on the wire, matching what order-tracking clients
// expect: {"event": "updated", ...order fields} or, for deletions,
// {"event": "deleted", "order_id": "..."}.
type Message struct {
	Topic  string
	Event  string
	Fields map[string]any
}

// NewChangeMessage builds the frame for a created/updated event on the given
// topic, carrying the order snapshot.
func NewChangeMessage(topic string, event OrderEvent) *Message {
	return &Message{
		Topic:  topic,
		Event:  NormalizeEventKind(event.Kind),
		Fields: event.Snapshot,
	}
}

// NewDeletionMessage builds the frame for a deleted event, which carries only
// the order identifier.
func NewDeletionMessage(topic, orderID string) *Message {
	return &Message{
		Topic:  topic,
		Event:  EventDeleted,
		Fields: map[string]any{"order_id": orderID},
	}
}

// NewRawMessage wraps an arbitrary payload for manual broadcasts; the payload
// is delivered verbatim with no event tag injected.
func NewRawMessage(topic string, payload map[string]any) *Message {
	return &Message{Topic: topic, Fields: payload}
}

// MarshalJSON flattens the event tag into the payload object. The tag wins
// over any "event" key already present in the snapshot.
func (m *Message) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Fields)+1)
	for k, v := range m.Fields {
		out[k] = v
	}
	if m.Event != "" {
		out["event"] = m.Event
	}
	return json.Marshal(out)
}
