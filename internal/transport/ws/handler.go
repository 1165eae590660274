package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"vibeform/internal/log"
	"vibeform/internal/model"
	"vibeform/internal/service"
	"vibeform/internal/transport/apierr"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	eventTimeout   = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // fill sessions are public, like the REST fill routes
	},
}

// FillEvents is the part of the fill service the websocket drives
type FillEvents interface {
	Snapshot(ctx context.Context, sessionID string) (*model.FillSnapshot, error)
	Apply(ctx context.Context, sessionID string, ev service.Event) (*model.FillSnapshot, error)
}

// Handler handles WebSocket connections
type Handler struct {
	hub  *Hub
	fill FillEvents
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, fill FillEvents) *Handler {
	return &Handler{
		hub:  hub,
		fill: fill,
	}
}

// FillWS handles GET /v1/ws/fill/{sessionId}
func (h *Handler) FillWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snap, err := h.fill.Snapshot(r.Context(), sessionID)
	if err != nil {
		status, msg := apierr.Describe(err)
		http.Error(w, msg, status)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		Hub:       h.hub,
	}
	first, _ := json.Marshal(newMessage(MsgSnapshot, snap))
	conn.Send <- first
	h.hub.Register(conn)

	log.WithFields(log.Fields{"session": sessionID, "remote": r.RemoteAddr}).Info("fill websocket connected")

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warnf("WebSocket error: %v", err)
			}
			break
		}
		h.handleEvent(conn, data)
	}
}

// handleEvent applies one client event. The resulting snapshot reaches every
// watcher through the hub; only refusals are answered directly.
func (h *Handler) handleEvent(conn *Connection, data []byte) {
	var ev service.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		sendTo(conn, newMessage(MsgError, ErrorPayload{Status: http.StatusBadRequest, Message: "invalid event"}))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if _, err := h.fill.Apply(ctx, conn.SessionID, ev); err != nil {
		status, msg := apierr.Describe(err)
		sendTo(conn, newMessage(MsgError, ErrorPayload{Status: status, Message: msg}))
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
