package usecase

import (
	"context"
	"log/slog"

	"bistroPulseWs/internal/modules/tracking/application/port"
	"bistroPulseWs/internal/modules/tracking/domain"
)

// PublishOrderEventUseCase turns committed order changes into topic-addressed
// frames. It is invoked by the persistence collaborator strictly after the
// commit is durable, once per change.
type PublishOrderEventUseCase struct {
	broadcaster port.Broadcaster
}

func NewPublishOrderEventUseCase(b port.Broadcaster) *PublishOrderEventUseCase {
	return &PublishOrderEventUseCase{broadcaster: b}
}

// Execute routes the event and publishes one independent message per topic.
// Topics with no live subscribers drop the message silently.
func (uc *PublishOrderEventUseCase) Execute(ctx context.Context, event domain.OrderEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	topics := event.Topics()
	if domain.RestaurantTopic(event.RestaurantID) == "" {
		// Branch-only and orphan orders reach no dashboard. Kept visible as a
		// data-quality signal rather than extended to branch topics.
		slog.Warn("order event without restaurant, dashboard fan-out skipped",
			slog.String("orderId", event.OrderID),
			slog.String("event", event.Kind))
	}

	for _, topic := range topics {
		var msg *domain.Message
		if domain.NormalizeEventKind(event.Kind) == domain.EventDeleted {
			msg = domain.NewDeletionMessage(topic, event.OrderID)
		} else {
			msg = domain.NewChangeMessage(topic, event)
		}
		uc.broadcaster.Broadcast(ctx, msg)
	}

	slog.Debug("order event published",
		slog.String("orderId", event.OrderID),
		slog.String("event", event.Kind),
		slog.Any("topics", topics))
	return nil
}
