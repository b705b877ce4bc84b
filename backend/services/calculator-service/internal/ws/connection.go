package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxMessageBytes = 64 << 10
	readTimeout     = 60 * time.Second
	sendBuffer      = 16
)

// MessageProcessor answers one raw client frame.
type MessageProcessor interface {
	Process(ctx context.Context, connID string, raw []byte) ([]byte, error)
}

// Connection is one live calculator client.
type Connection struct {
	id           string
	ws           *websocket.Conn
	writeMu      sync.Mutex
	send         chan []byte
	done         chan struct{}
	logger       *zap.Logger
	processor    MessageProcessor
	writeTimeout time.Duration
	onClose      func(connID string)
}

// NewConnection builds connection wrapper.
func NewConnection(id string, ws *websocket.Conn, processor MessageProcessor, writeTimeout time.Duration, logger *zap.Logger, onClose func(string)) *Connection {
	return &Connection{
		id:           id,
		ws:           ws,
		send:         make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
		logger:       logger.With(zap.String("conn_id", id)),
		processor:    processor,
		writeTimeout: writeTimeout,
		onClose:      onClose,
	}
}

// ID returns identifier.
func (c *Connection) ID() string {
	return c.id
}

// Start launches read/write pumps and blocks until the client goes away.
func (c *Connection) Start(ctx context.Context) {
	go c.writePump(ctx)
	c.readPump(ctx)
}

func (c *Connection) readPump(ctx context.Context) {
	defer c.cleanup()
	c.ws.SetReadLimit(maxMessageBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := c.ws.ReadMessage()
		if err != nil {
			c.logger.Info("connection read closed", zap.Error(err))
			return
		}

		response, err := c.processor.Process(ctx, c.id, message)
		if err != nil {
			c.logger.Warn("failed to process message", zap.Error(err))
			continue
		}
		if response != nil {
			c.Send(response)
		}
	}
}

func (c *Connection) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		}
	}
}

// Send enqueues a message for writing. It never blocks; a full buffer or a
// closed connection drops the message.
func (c *Connection) Send(msg []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("dropping outgoing message, buffer full")
	}
}

// Ping sends ping.
func (c *Connection) Ping() error {
	return c.write(websocket.PingMessage, []byte("ping"))
}

// Close sends a close frame and drops the socket. The read pump then exits
// and runs cleanup.
func (c *Connection) Close() {
	_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
	_ = c.ws.Close()
}

// write serializes writers; gorilla allows one at a time.
func (c *Connection) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}

func (c *Connection) cleanup() {
	close(c.done)
	_ = c.ws.Close()
	if c.onClose != nil {
		c.onClose(c.id)
	}
}
