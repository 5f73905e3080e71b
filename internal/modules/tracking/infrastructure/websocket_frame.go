package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// FrameHandler reacts to one inbound client frame, already decoded.
type FrameHandler func(client *Client, frame map[string]any)

// FrameProcessor dispatches inbound frames by their declared "type". Only
// diagnostic kinds have handlers; everything else is accepted and discarded
// so newer clients can send types this server does not know yet.
type FrameProcessor struct {
	handlers map[string]FrameHandler
}

func NewFrameProcessor() *FrameProcessor {
	p := &FrameProcessor{handlers: make(map[string]FrameHandler)}
	p.Register("ping", handleEcho)
	p.Register("test", handleEcho)
	return p
}

func (p *FrameProcessor) Register(frameType string, handler FrameHandler) {
	key := normalizeFrameType(frameType)
	if key == "" || handler == nil {
		return
	}
	p.handlers[key] = handler
}

// Process decodes and dispatches one frame. Undecodable frames are dropped,
// never fatal to the connection.
func (p *FrameProcessor) Process(client *Client, raw []byte) {
	var frame map[string]any
	if err := json.Unmarshal(raw, &frame); err != nil {
		slog.Debug("ws frame undecodable", slog.String("connectionId", client.id), slog.Any("error", err))
		return
	}

	frameType, _ := frame["type"].(string)
	handler, ok := p.handlers[normalizeFrameType(frameType)]
	if !ok {
		slog.Debug("ws frame ignored", slog.String("connectionId", client.id), slog.String("type", frameType))
		return
	}
	handler(client, frame)
}

// handleEcho replies with the original object wrapped in an echo envelope.
func handleEcho(client *Client, frame map[string]any) {
	client.SendJSON(map[string]any{"echo": frame})
}

func normalizeFrameType(frameType string) string {
	return strings.ToLower(strings.TrimSpace(frameType))
}
