package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of active clients and routes swap notifications to
// the users they concern
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Users mapping (userID -> that user's connections)
	users map[uint]map[*Client]bool

	// Mutex for users map
	usersMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		users:      make(map[uint]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

			h.usersMux.Lock()
			if _, ok := h.users[client.userID]; !ok {
				h.users[client.userID] = make(map[*Client]bool)
			}
			h.users[client.userID][client] = true
			h.usersMux.Unlock()
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				h.usersMux.Lock()
				if clients, ok := h.users[client.userID]; ok {
					delete(clients, client)
					// Clean up users with no remaining connections
					if len(clients) == 0 {
						delete(h.users, client.userID)
					}
				}
				h.usersMux.Unlock()
			}
		}
	}
}

// notifyUser sends a message to all of a user's connections
func (h *Hub) notifyUser(userID uint, message []byte) {
	h.usersMux.RLock()
	defer h.usersMux.RUnlock()

	if clients, ok := h.users[userID]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				close(client.send)
				delete(clients, client)
				delete(h.clients, client)
			}
		}
	}
}

// NotifyUser pushes a typed notification to every connection a user has
// open. Delivery is best effort and never blocks the caller.
func NotifyUser(userID uint, msgType string, payload interface{}) {
	if hub == nil {
		return
	}

	msg := Message{
		Type:    msgType,
		Payload: payload,
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("error marshaling message: %v", err)
		return
	}

	hub.notifyUser(userID, msgBytes)
}

// Global hub instance
var hub *Hub

// InitHub initializes the global hub
func InitHub() {
	hub = NewHub()
	go hub.Run()
}
