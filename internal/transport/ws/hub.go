package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgNotificationCreated MessageType = "notification_created"
	MsgError               MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections, keyed by teacher ID. A
// teacher may have several dashboards open at once.
type Hub struct {
	conns map[string]map[*Connection]bool // teacherID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	TeacherID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message destined for one teacher's dashboards
type BroadcastMessage struct {
	TeacherID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
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
			if h.conns[conn.TeacherID] == nil {
				h.conns[conn.TeacherID] = make(map[*Connection]bool)
			}
			h.conns[conn.TeacherID][conn] = true
			h.mu.Unlock()
			log.Printf("Teacher %s dashboard connected", conn.TeacherID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.TeacherID]; ok {
				if set[conn] {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.TeacherID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Teacher %s dashboard disconnected", conn.TeacherID)

		case bm := <-h.broadcast:
			data, err := json.Marshal(bm.Message)
			if err != nil {
				log.Printf("Failed to marshal ws message: %v", err)
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[bm.TeacherID] {
				select {
				case conn.Send <- data:
				default:
					// Slow consumer; drop the message rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifyTeacher implements service.Broadcaster
func (h *Hub) NotifyTeacher(teacherID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal ws payload: %v", err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		TeacherID: teacherID,
		Message:   &Message{Type: MessageType(event), Payload: data},
	}
}
