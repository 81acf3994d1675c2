package ws

import (
	"context"
	"log"
	"sync"

	"nextcut/internal/events"
)

// Hub holds websocket subscribers grouped by barber. Run owns the client set;
// mu only guards it for readers outside the loop.
type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}
	mu         sync.RWMutex
}

type outbound struct {
	barberID uint
	payload  []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 64),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for barberID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, barberID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.barberID] == nil {
				h.clients[client.barberID] = make(map[*Client]bool)
			}
			h.clients[client.barberID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.barberID] {
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer.
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(client *Client) {
	clients, ok := h.clients[client.barberID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.barberID)
	}
}

// Publish sends e to every subscriber of its barber's queue.
func (h *Hub) Publish(ctx context.Context, e events.Event) error {
	payload, err := events.Encode(e)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- outbound{barberID: e.BarberID, payload: payload}:
		return nil
	case <-h.done:
		log.Printf("hub stopped, dropping %s for barber %d", e.EventType, e.BarberID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribers reports how many clients watch barberID's queue.
func (h *Hub) Subscribers(barberID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[barberID])
}
