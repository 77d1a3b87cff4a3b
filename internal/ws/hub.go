// Package ws pushes record events to dashboard clients over WebSocket.
// The feed is one-way: clients listen, the bot and the admin API write.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"FarmBot/entity"
)

// Event types pushed to dashboard clients.
const (
	EventHarvestRecorded  = "harvest_recorded"
	EventDeliveryRecorded = "delivery_recorded"
	EventPaymentRecorded  = "payment_recorded"
	EventPriceAdded       = "price_added"
)

// Event is a single feed entry.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts
// events to all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// HarvestRecorded pushes a harvest_recorded event.
func (h *Hub) HarvestRecorded(harvest entity.Harvest) {
	h.broadcast <- &Event{Type: EventHarvestRecorded, Data: harvest}
}

// DeliveryRecorded pushes a delivery_recorded event.
func (h *Hub) DeliveryRecorded(delivery entity.Delivery) {
	h.broadcast <- &Event{Type: EventDeliveryRecorded, Data: delivery}
}

// PaymentRecorded pushes a payment_recorded event.
func (h *Hub) PaymentRecorded(payment entity.Payment) {
	h.broadcast <- &Event{Type: EventPaymentRecorded, Data: payment}
}

// PriceAdded pushes a price_added event.
func (h *Hub) PriceAdded(price entity.MarketPrice) {
	h.broadcast <- &Event{Type: EventPriceAdded, Data: price}
}
