package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	bufferSize = 64
)

// Connection wraps one monitor websocket. Writes go through a buffered
// channel; a full buffer marks the consumer as too slow.
type Connection struct {
	ws      *websocket.Conn
	out     chan []byte
	closed  bool
	closeMu sync.Mutex
}

func newConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ws:  ws,
		out: make(chan []byte, bufferSize),
	}
}

// send queues a message. Returns false when the buffer is full or the
// connection is closed.
func (c *Connection) send(data []byte) bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.out <- data:
		return true
	default:
		return false
	}
}

func (c *Connection) close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.out)
	c.ws.Close()
}

// writeLoop drains the outbound queue onto the socket.
func (c *Connection) writeLoop() {
	for data := range c.out {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// readLoop discards inbound frames and detects disconnects.
func (c *Connection) readLoop(onClose func()) {
	defer onClose()
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}
