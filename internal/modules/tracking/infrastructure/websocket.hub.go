package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"bistroPulseWs/internal/modules/tracking/domain"
)

// Hub owns every live connection, grouped by topic. It is the only shared
// mutable state in the service; all mutations and snapshot reads go through
// one RWMutex. Topics exist exactly as long as they have members.
type Hub struct {
	topics map[string]map[*Client]struct{}
	mu     sync.RWMutex
	closed bool
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Client]struct{})}
}

// Attach registers the client under its topic and returns false when the hub
// is already shut down, in which case the client is closed instead.
func (h *Hub) Attach(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.close()
		return false
	}
	if h.topics[c.topic] == nil {
		h.topics[c.topic] = make(map[*Client]struct{})
	}
	h.topics[c.topic][c] = struct{}{}
	h.mu.Unlock()

	slog.Info("ws client attached", slog.String("connectionId", c.id), slog.String("topic", c.topic))
	return true
}

// Detach removes the client from its topic and closes it. Safe to call more
// than once and for clients that were never attached.
func (h *Hub) Detach(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	if subs, ok := h.topics[c.topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, c.topic)
		}
	}
	h.mu.Unlock()
	c.close()
	slog.Info("ws client detached", slog.String("connectionId", c.id), slog.String("topic", c.topic))
}

// Members returns a snapshot of the topic's current subscribers, so fan-out
// iteration is never invalidated by concurrent attach/detach.
func (h *Hub) Members(topic string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs := h.topics[topic]
	members := make([]*Client, 0, len(subs))
	for c := range subs {
		members = append(members, c)
	}
	return members
}

// MemberCount reports the number of live subscribers of the topic.
func (h *Hub) MemberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast writes msg to every current subscriber of its topic. Delivery is
// best effort per subscriber: a full send buffer marks that subscriber dead
// and detaches it without delaying the rest or failing the caller.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.String("topic", msg.Topic), slog.Any("error", err))
		return
	}

	for _, c := range h.Members(msg.Topic) {
		if !c.enqueue(data) {
			slog.Warn("ws send buffer full, dropping client",
				slog.String("connectionId", c.id), slog.String("topic", c.topic))
			go h.Detach(c)
		}
	}
}

// Shutdown closes every live connection and refuses further attachments.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0)
	for topic, subs := range h.topics {
		for c := range subs {
			clients = append(clients, c)
		}
		delete(h.topics, topic)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	slog.Info("ws hub shut down", slog.Int("connections", len(clients)))
}
