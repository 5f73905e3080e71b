package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bistroPulseWs/internal/modules/tracking/application/port"
	"bistroPulseWs/internal/modules/tracking/application/usecase"
	"bistroPulseWs/internal/modules/tracking/domain"
)

// OrderStreamHandler consumes the persistence collaborator's order-change
// topic and forwards each committed change to the publisher.
type OrderStreamHandler struct {
	kafkaTopic string
	publishUC  *usecase.PublishOrderEventUseCase
}

func NewOrderStreamHandler(kafkaTopic string, publishUC *usecase.PublishOrderEventUseCase) *OrderStreamHandler {
	return &OrderStreamHandler{
		kafkaTopic: strings.TrimSpace(kafkaTopic),
		publishUC:  publishUC,
	}
}

func (h *OrderStreamHandler) Topic() string { return h.kafkaTopic }

func (h *OrderStreamHandler) Handle(ctx context.Context, value []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decode order event: %w", err)
	}
	if err := h.publishUC.Execute(ctx, event); err != nil {
		return fmt.Errorf("publish order event %q: %w", event.OrderID, err)
	}
	return nil
}

var _ port.TopicHandler = (*OrderStreamHandler)(nil)
