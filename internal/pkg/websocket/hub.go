// Package websocket streams activity log changes to connected admin clients.
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/schooladmin/internal/app/models"
)

// publishBuffer bounds the events queued while the hub is busy
const publishBuffer = 64

// Hub maintains the set of connected feed clients and fans events out to them
type Hub struct {
	clients map[*Client]bool

	// Events waiting to be broadcast
	broadcast chan models.ActivityEvent

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.ActivityEvent, publishBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for every connected client. It never blocks the
// caller; events are dropped when the queue is full.
func (h *Hub) Publish(event models.ActivityEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().
			Str("type", event.Type).
			Str("entryID", event.Entry.ID).
			Msg("Activity feed queue full, event dropped")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Str("admin", client.username).
		Str("addr", client.remoteAddr()).
		Msg("Feed client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	h.logger.Info().
		Str("admin", client.username).
		Str("addr", client.remoteAddr()).
		Msg("Feed client unregistered")
}

func (h *Hub) broadcastEvent(event models.ActivityEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal activity event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow client; drop it rather than stall the feed
			delete(h.clients, client)
			close(client.send)
			h.logger.Warn().Str("admin", client.username).Msg("Dropped slow feed client")
		}
	}

	h.logger.Debug().
		Str("type", event.Type).
		Int("clientCount", len(h.clients)).
		Msg("Activity event broadcast")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}
