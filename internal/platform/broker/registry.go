package broker

import (
	"context"
	"log/slog"

	"bistroPulseWs/internal/modules/tracking/application/port"
)

// HandlerRegistry maps external event topics to their handlers. Registration
// happens once at startup, before any consumer runs.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Topics lists every registered topic.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch routes one message value to the handler for its topic. Messages
// on unregistered topics are dropped.
func (r *HandlerRegistry) Dispatch(ctx context.Context, topic string, value []byte) error {
	if handler, ok := r.handlers[topic]; ok {
		return handler.Handle(ctx, value)
	}
	return nil
}

// StartKafkaConsumers launches one consumer goroutine per registered topic.
// With no brokers configured it does nothing, so local runs work without a
// Kafka cluster and rely on the HTTP notify endpoint instead.
func StartKafkaConsumers(ctx context.Context, registry *HandlerRegistry, brokers []string, groupID string) {
	if len(brokers) == 0 {
		slog.Info("no kafka brokers configured, consumers disabled")
		return
	}
	for _, topic := range registry.Topics() {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			_ = consumer.Consume(ctx, func(cctx context.Context, value []byte) error {
				return registry.Dispatch(cctx, tp, value)
			})
		}(topic)
	}
}
