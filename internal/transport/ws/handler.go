package ws

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/inov8tr/placement-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades proctor monitor connections.
type Handler struct {
	hub     *Hub
	authSvc *service.AuthService
	logger  *zap.Logger
}

// NewHandler creates the WS handler.
func NewHandler(hub *Hub, authSvc *service.AuthService, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, authSvc: authSvc, logger: logger}
}

// MonitorWS handles GET /v1/ws/tests/{testId}/monitor. Admin token comes in
// the query string since browser websockets cannot set headers.
func (h *Handler) MonitorWS(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	token := r.URL.Query().Get("token")
	if _, err := h.authSvc.ValidateAdminToken(token); err != nil {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("monitor upgrade failed", zap.String("testId", testID), zap.Error(err))
		return
	}

	conn := newConnection(ws)
	h.hub.register(testID, conn)
	go conn.writeLoop()
	go conn.readLoop(func() {
		h.hub.unregister(testID, conn)
	})
}
