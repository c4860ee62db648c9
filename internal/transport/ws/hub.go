package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Message is the monitor feed envelope.
type Message struct {
	Event   string      `json:"event"`
	TestID  string      `json:"testId"`
	Payload interface{} `json:"payload"`
}

// Hub fans live progress events out to proctor monitor connections. Events
// are emitted inside request handling; slow consumers are dropped rather
// than allowed to block a submission.
type Hub struct {
	mu       sync.RWMutex
	monitors map[string]map[*Connection]bool // testID -> connections
	logger   *zap.Logger
}

// NewHub creates a monitor hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		monitors: make(map[string]map[*Connection]bool),
		logger:   logger,
	}
}

func (h *Hub) register(testID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.monitors[testID] == nil {
		h.monitors[testID] = make(map[*Connection]bool)
	}
	h.monitors[testID][conn] = true
}

func (h *Hub) unregister(testID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.monitors[testID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.monitors, testID)
		}
	}
	conn.close()
}

// BroadcastToMonitors implements service.Broadcaster.
func (h *Hub) BroadcastToMonitors(testID string, event string, payload interface{}) {
	data, err := json.Marshal(Message{Event: event, TestID: testID, Payload: payload})
	if err != nil {
		h.logger.Warn("monitor event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.monitors[testID]))
	for conn := range h.monitors[testID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if !conn.send(data) {
			h.unregister(testID, conn)
		}
	}
}
