package port

import (
	"context"

	"bistroPulseWs/internal/modules/tracking/domain"
)

// Broadcaster is the fan-out contract: deliver one message to every live
// subscriber of its topic, best effort per subscriber.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
	// MemberCount reports a snapshot count of the topic's live subscribers.
	MemberCount(topic string) int
}

// TopicHandler is implemented by consumers of one external event stream.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, value []byte) error
}
