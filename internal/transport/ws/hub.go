package ws

import (
	"encoding/json"
	"sync"

	"vibeform/internal/log"
	"vibeform/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Server message types
const (
	MsgSnapshot MessageType = "snapshot"
	MsgError    MessageType = "error"
	MsgClosed   MessageType = "closed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is sent to the connection whose event was refused
type ErrorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Hub fans fill snapshots out to every connection watching a session
type Hub struct {
	// session -> connections
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast. Close drops every connection
// of the session once the message is queued.
type BroadcastMessage struct {
	SessionID string
	Message   *Message
	Close     bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			log.Debugf("connection joined fill session %s", conn.SessionID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.SessionID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.SessionID)
					}
					log.Debugf("connection left fill session %s", conn.SessionID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg.Message)
			h.mu.Lock()
			for conn := range h.conns[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
				if msg.Close {
					close(conn.Send)
				}
			}
			if msg.Close {
				delete(h.conns, msg.SessionID)
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Watchers returns the number of connections on a session
func (h *Hub) Watchers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[sessionID])
}

// BroadcastSnapshot sends a snapshot to every watcher (implements service.Broadcaster)
func (h *Hub) BroadcastSnapshot(sessionID string, snap *model.FillSnapshot) {
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message:   newMessage(MsgSnapshot, snap),
	}
}

// CloseSession disconnects every watcher of a session (implements service.Broadcaster)
func (h *Hub) CloseSession(sessionID string) {
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message:   newMessage(MsgClosed, map[string]string{"sessionId": sessionID}),
		Close:     true,
	}
}

func newMessage(t MessageType, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: t, Payload: data}
}

// sendTo queues a message for a single connection, dropping it if the buffer is full
func sendTo(conn *Connection, msg *Message) {
	data, _ := json.Marshal(msg)
	conn.Hub.mu.RLock()
	defer conn.Hub.mu.RUnlock()
	if _, ok := conn.Hub.conns[conn.SessionID][conn]; !ok {
		return
	}
	select {
	case conn.Send <- data:
	default:
	}
}
