package domain

import (
	"encoding/json"
	"testing"
)

func marshal(t *testing.T, msg *Message) map[string]any {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return out
}

func TestChangeMessageFlattensSnapshot(t *testing.T) {
	t.Parallel()

	event := OrderEvent{
		Kind:         "Updated",
		OrderID:      "BO1",
		RestaurantID: "R7",
		Snapshot:     map[string]any{"id": "BO1", "status": "On the way"},
	}
	out := marshal(t, NewChangeMessage("order:BO1", event))

	if out["event"] != "updated" {
		t.Fatalf("expected event updated, got %v", out["event"])
	}
	if out["status"] != "On the way" {
		t.Fatalf("expected flattened snapshot field, got %v", out)
	}
	if _, nested := out["order"]; nested {
		t.Fatalf("snapshot must be flattened, got %v", out)
	}
}

func TestChangeMessageEventTagWins(t *testing.T) {
	t.Parallel()

	event := OrderEvent{
		Kind:     "created",
		OrderID:  "BO1",
		Snapshot: map[string]any{"event": "bogus", "id": "BO1"},
	}
	out := marshal(t, NewChangeMessage("order:BO1", event))
	if out["event"] != "created" {
		t.Fatalf("event tag must win over snapshot key, got %v", out["event"])
	}
}

func TestDeletionMessageShape(t *testing.T) {
	t.Parallel()

	out := marshal(t, NewDeletionMessage("order:BO1", "BO1"))
	if out["event"] != "deleted" {
		t.Fatalf("expected event deleted, got %v", out["event"])
	}
	if out["order_id"] != "BO1" {
		t.Fatalf("expected order_id, got %v", out)
	}
	if len(out) != 2 {
		t.Fatalf("deletion frame carries only event and order_id, got %v", out)
	}
}

func TestRawMessagePassthrough(t *testing.T) {
	t.Parallel()

	out := marshal(t, NewRawMessage("test", map[string]any{"status": "healthy"}))
	if out["status"] != "healthy" {
		t.Fatalf("expected verbatim payload, got %v", out)
	}
	if _, tagged := out["event"]; tagged {
		t.Fatalf("raw messages carry no event tag, got %v", out)
	}
}
