// Package transport owns the persistent duplex connection to the game
// server. It knows nothing about game semantics: it frames outgoing client
// messages, decodes inbound server messages, and reports lifecycle events.
// Reconnection is the owning session's responsibility, not the transport's.
package transport

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/hexhive/hive-client/internal/proto"
)

// ErrAlreadyConnected is returned by Open when a connection is already up.
var ErrAlreadyConnected = errors.New("transport: already connected")

// EventKind discriminates transport events.
type EventKind uint8

const (
	Connected EventKind = iota
	Disconnected
	MessageReceived
)

// Event is delivered on the client's event channel. The session consumes
// events on its own goroutine; the transport never touches session state.
type Event struct {
	Kind    EventKind
	Code    websocket.StatusCode // Disconnected only
	Message proto.ServerMsg      // MessageReceived only
}

// Client maintains at most one connection to a single configured endpoint.
type Client struct {
	url    string
	logger *zap.Logger
	events chan Event

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
}

// New creates a client for the given websocket endpoint. A nil logger
// disables logging.
func New(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    url,
		logger: logger,
		events: make(chan Event, 64),
	}
}

// Events is the stream of lifecycle and message events.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Open dials the endpoint and starts the read loop. A Connected event is
// emitted once the connection is established.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return err
	}

	readCtx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.conn = conn
	c.cancel = cancel
	c.mu.Unlock()

	c.logger.Info("connected", zap.String("url", c.url))
	c.events <- Event{Kind: Connected}
	go c.readLoop(readCtx, conn)
	return nil
}

// Send serializes and writes a client message. Sends before the connection
// opens are dropped; callers are responsible for waiting on Connected.
func (c *Client) Send(ctx context.Context, msg proto.ClientMsg) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		c.logger.Debug("send dropped, not connected", zap.String("type", msg.Type))
		return
	}

	data, err := proto.EncodeClient(msg)
	if err != nil {
		c.logger.Debug("send dropped, encode failed", zap.Error(err))
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		c.logger.Debug("write failed", zap.Error(err))
	}
}

// Close shuts the connection down gracefully with the given status code.
// The read loop emits the Disconnected event.
func (c *Client) Close(code websocket.StatusCode, reason string) {
	c.mu.Lock()
	conn := c.conn
	cancel := c.cancel
	c.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.Close(code, reason)
	if cancel != nil {
		cancel()
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.cancel = nil
		c.mu.Unlock()
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			code := websocket.CloseStatus(err)
			c.logger.Info("disconnected", zap.Int("code", int(code)))
			c.events <- Event{Kind: Disconnected, Code: code}
			return
		}

		msg, err := proto.DecodeServer(data)
		if err != nil {
			// Malformed frames are dropped, never fatal.
			c.logger.Debug("dropped malformed frame", zap.Error(err))
			continue
		}
		c.events <- Event{Kind: MessageReceived, Message: msg}
	}
}
