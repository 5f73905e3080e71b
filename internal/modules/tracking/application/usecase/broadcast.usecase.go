package usecase

import (
	"context"
	"errors"
	"strings"

	"bistroPulseWs/internal/modules/tracking/application/port"
	"bistroPulseWs/internal/modules/tracking/domain"
)

var ErrMissingTopic = errors.New("missing topic")

// BroadcastUseCase is the out-of-band publish entry point used by operational
// tooling: deliver an arbitrary payload to one topic, bypassing order-event
// routing entirely.
type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

// Execute publishes payload verbatim and reports how many subscribers the
// topic had at publish time.
func (uc *BroadcastUseCase) Execute(ctx context.Context, topic string, payload map[string]any) (int, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return 0, ErrMissingTopic
	}
	members := uc.broadcaster.MemberCount(topic)
	uc.broadcaster.Broadcast(ctx, domain.NewRawMessage(topic, payload))
	return members, nil
}
