package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/BVTRay/vioflow/internal/state"
)

// Update tells connected consoles the snapshot moved; they refetch the state
// they care about over HTTP.
type Update struct {
	Type    string `json:"type"`
	Version int64  `json:"version"`
}

// Hub manages active clients and snapshot broadcasts.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub builds a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Broadcast sends a payload to all connected clients.
func (h *Hub) Broadcast(payload []byte) {
	h.broadcast <- payload
}

// NotifySnapshot pushes a version update for a new snapshot. Wire it into the
// store with store.Watch(hub.NotifySnapshot).
func (h *Hub) NotifySnapshot(snap state.Snapshot) {
	payload, err := json.Marshal(Update{Type: "snapshot", Version: snap.Version})
	if err != nil {
		return
	}
	h.Broadcast(payload)
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Client represents a websocket connection.
type Client struct {
	Conn *websocket.Conn
	Hub  *Hub
	Send chan []byte
}

// NewClient returns a client ready for registration.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Conn: conn,
		Hub:  hub,
		Send: make(chan []byte, 256),
	}
}
