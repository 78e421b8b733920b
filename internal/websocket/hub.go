package websocket

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// ownerMessage is an encoded message addressed to every client of one owner.
type ownerMessage struct {
	ownerID string
	data    []byte
}

// Hub maintains the set of active clients and routes messages to them by
// owner. All maps are touched only by the Run goroutine.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// A map of owner IDs to the set of clients authenticated as that owner.
	owners map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	publish    chan ownerMessage
	done       chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		owners:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan ownerMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns when ctx is done,
// closing every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.remove(client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			if h.owners[client.OwnerID] == nil {
				h.owners[client.OwnerID] = make(map[*Client]bool)
			}
			h.owners[client.OwnerID][client] = true
			log.Info().Int("total_clients", len(h.clients)).Str("user_id", client.OwnerID).Msg("Client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				log.Info().Int("total_clients", len(h.clients)).Str("user_id", client.OwnerID).Msg("Client disconnected")
			}
		case msg := <-h.publish:
			for client := range h.owners[msg.ownerID] {
				select {
				case client.send <- msg.data:
				default:
					log.Warn().Str("user_id", client.OwnerID).Msg("Dropping slow websocket client")
					h.remove(client)
				}
			}
		}
	}
}

// Register adds client to the hub. It is a no-op once the hub has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes client from the hub.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// NotifyOwner sends msg to every client connected as ownerID. Messages for
// owners with no connected clients are discarded.
func (h *Hub) NotifyOwner(ownerID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("action", msg.Action).Msg("Failed to encode websocket message")
		return
	}

	select {
	case h.publish <- ownerMessage{ownerID: ownerID, data: data}:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	if subs, ok := h.owners[client.OwnerID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.owners, client.OwnerID)
		}
	}
}
