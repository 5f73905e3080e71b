package domain

import (
	"errors"
	"strings"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

var (
	ErrUnknownEventKind = errors.New("unknown event kind")
	ErrMissingOrderID   = errors.New("missing order id")
)

// OrderEvent is the change notification emitted by the order-management
// collaborator once per committed create/update/delete. Snapshot carries the
// order's serialized state for created/updated and is nil for deleted.
type OrderEvent struct {
	Kind         string         `json:"event"`
	OrderID      string         `json:"order_id"`
	RestaurantID string         `json:"restaurant_id,omitempty"`
	Snapshot     map[string]any `json:"order,omitempty"`
}

// NormalizeEventKind lowercases and trims a kind, returning "" when it is not
// one of created/updated/deleted.
func NormalizeEventKind(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EventCreated:
		return EventCreated
	case EventUpdated:
		return EventUpdated
	case EventDeleted:
		return EventDeleted
	default:
		return ""
	}
}

// Validate reports whether the event can be routed at all.
func (e OrderEvent) Validate() error {
	if NormalizeEventKind(e.Kind) == "" {
		return ErrUnknownEventKind
	}
	if strings.TrimSpace(e.OrderID) == "" {
		return ErrMissingOrderID
	}
	return nil
}

// Topics resolves the broadcast topics for the event: always the order topic,
// plus the owning restaurant's dashboard topic when the order references a
// restaurant directly. Orders linked only to a franchise branch produce no
// dashboard topic.
func (e OrderEvent) Topics() []string {
	topics := make([]string, 0, 2)
	if t := OrderTopic(e.OrderID); t != "" {
		topics = append(topics, t)
	}
	if t := RestaurantTopic(e.RestaurantID); t != "" {
		topics = append(topics, t)
	}
	return topics
}
