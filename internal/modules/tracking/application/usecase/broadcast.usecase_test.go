package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestManualBroadcastReportsMembers(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{members: map[string]int{"test": 3}}
	uc := NewBroadcastUseCase(broadcaster)

	members, err := uc.Execute(context.Background(), " test ", map[string]any{"status": "healthy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if members != 3 {
		t.Fatalf("expected 3 members, got %d", members)
	}
	if len(broadcaster.messages) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(broadcaster.messages))
	}
	msg := broadcaster.messages[0]
	if msg.Topic != "test" || msg.Event != "" || msg.Fields["status"] != "healthy" {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

func TestManualBroadcastRequiresTopic(t *testing.T) {
	t.Parallel()

	uc := NewBroadcastUseCase(&recordingBroadcaster{})
	if _, err := uc.Execute(context.Background(), "  ", nil); !errors.Is(err, ErrMissingTopic) {
		t.Fatalf("expected ErrMissingTopic, got %v", err)
	}
}
