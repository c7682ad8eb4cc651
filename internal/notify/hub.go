// Package notify broadcasts order update notifications to admin
// dashboards over WebSocket. Clients subscribe per order; the edit flow
// publishes an event when a stretch-data save lands.
package notify

import (
	"encoding/json"
	"log"
	"sync"
)

// EventStretchDataUpdated is published after a successful measurement save.
const EventStretchDataUpdated = "stretch_data.updated"

// Event is a WebSocket message to be broadcast.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// orderEvent routes an event to one order's room.
type orderEvent struct {
	OrderID string
	Event   Event
}

// Hub maintains the set of active clients and broadcasts messages to
// them, one room per order ID.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *orderEvent

	mu sync.RWMutex
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *orderEvent, 256),
	}
}

// Run starts the hub's main loop. Call as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.orderID] == nil {
				h.rooms[client.orderID] = make(map[*Client]bool)
			}
			h.rooms[client.orderID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.orderID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.orderID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.OrderID]

			message, err := json.Marshal(event.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.rooms[event.OrderID], client)
					if len(h.rooms[event.OrderID]) == 0 {
						delete(h.rooms, event.OrderID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToOrder sends an event to all clients subscribed to an order.
func (h *Hub) BroadcastToOrder(orderID string, event Event) {
	h.broadcast <- &orderEvent{OrderID: orderID, Event: event}
}

// StretchDataUpdated publishes the post-save success notification. It
// satisfies the edit session's Notifier interface.
func (h *Hub) StretchDataUpdated(orderID, message string) {
	payload, err := json.Marshal(map[string]string{
		"orderId": orderID,
		"message": message,
	})
	if err != nil {
		log.Printf("ERROR: marshal stretch data notification: %v", err)
		return
	}
	h.BroadcastToOrder(orderID, Event{
		Type:    EventStretchDataUpdated,
		Payload: payload,
	})
}
