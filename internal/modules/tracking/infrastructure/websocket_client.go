package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ClientOptions bounds one connection's resource usage.
type ClientOptions struct {
	SendBuffer   int
	ReadLimit    int64
	PongWait     time.Duration
	PingInterval time.Duration
}

func (o ClientOptions) normalize() ClientOptions {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 8
	}
	if o.ReadLimit <= 0 {
		o.ReadLimit = 1 << 16
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	return o
}

// Client is one live subscriber session, bound to exactly one topic for its
// whole life. The hub owns it; the read/write pumps hold transient references
// for socket I/O.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	id        string
	topic     string
	opts      ClientOptions
	frames    *FrameProcessor
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, topic string, opts ClientOptions) *Client {
	opts = opts.normalize()
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, opts.SendBuffer),
		id:     uuid.NewString(),
		topic:  strings.TrimSpace(topic),
		opts:   opts,
		frames: NewFrameProcessor(),
	}
}

// ID returns the unique connection identifier.
func (c *Client) ID() string { return c.id }

// Topic returns the topic the connection is bound to.
func (c *Client) Topic() string { return c.topic }

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// enqueue hands data to the write pump without blocking. A false return
// means the outbound buffer is full and the client is presumed dead.
func (c *Client) enqueue(data []byte) (ok bool) {
	defer func() {
		// send is closed once the client is detached; treat a racing enqueue
		// as a failed delivery rather than a crash.
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// SendJSON marshals v and queues it for the write pump. Undeliverable
// clients are detached, matching broadcast semantics.
func (c *Client) SendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("websocket marshal error", slog.String("connectionId", c.id), slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("websocket send buffer full", slog.String("connectionId", c.id), slog.String("topic", c.topic))
		go c.hub.Detach(c)
	}
}

// WritePump drains the send buffer onto the socket and keeps the connection
// alive with periodic pings. Any write failure ends the connection.
func (c *Client) WritePump() {
	ping := time.NewTicker(c.opts.PingInterval)
	defer ping.Stop()
	defer c.hub.Detach(c)

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(time.Second))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.String("connectionId", c.id), slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("websocket ping error", slog.String("connectionId", c.id), slog.Any("error", err))
				return
			}
		}
	}
}

// ReadPump consumes inbound frames until the transport fails or the client
// closes, then detaches exactly once. Frame-level problems never end the
// connection; only transport-level ones do.
func (c *Client) ReadPump() {
	c.conn.SetReadLimit(c.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})
	defer c.hub.Detach(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("connectionId", c.id), slog.String("topic", c.topic), slog.Any("error", err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		c.frames.Process(c, data)
	}
}
