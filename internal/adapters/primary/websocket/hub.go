package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/lorrc/desk-simulator/internal/core/ports"
)

// Hub maintains the set of active Clients and routes run events to them.
type Hub struct {
	// clients holds every connected client
	clients map[*Client]bool

	// rooms maps run IDs to subscribed clients
	rooms map[uuid.UUID]map[*Client]bool

	// Broadcast channel for events
	broadcast chan domain.Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// mu protects the clients and rooms maps
	mu sync.RWMutex

	// logger for the hub
	logger *slog.Logger
}

// Ensure Hub implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan domain.Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Broadcast sends an event to the hub's internal broadcast channel.
// This method implements the ports.EventBroadcaster interface.
func (h *Hub) Broadcast(event domain.Event) error {
	select {
	case h.broadcast <- event:
		return nil
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			"event_type", event.Type,
			"run_id", event.RunID,
		)
		return nil
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info("client registered",
		"total_connections", len(h.clients),
	)
}

// unregisterClient removes a client from the hub and all rooms
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Get subscriptions before removing from maps
	subscriptions := client.GetSubscriptions()

	// 1. Remove from the global client set
	delete(h.clients, client)

	// 2. Remove from all subscribed rooms
	for _, runID := range subscriptions {
		if room, ok := h.rooms[runID]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, runID)
			}
		}
	}

	// 3. Safely close the send channel
	client.CloseSend()

	h.logger.Info("client unregistered",
		"total_connections", len(h.clients),
	)
}

// broadcastEvent sends an event to all clients subscribed to the run
func (h *Hub) broadcastEvent(event domain.Event) {
	h.mu.RLock()
	room, ok := h.rooms[event.RunID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Copy the client list to avoid holding the lock while sending
	clients := make([]*Client, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.logger.Debug("broadcasting event",
		"event_type", event.Type,
		"run_id", event.RunID,
		"client_count", len(clients),
	)

	// Send to each client
	for _, client := range clients {
		select {
		case client.Send <- event:
			// Successfully queued
		default:
			// Client's send buffer is full, unregister them
			h.logger.Warn("client send buffer full, unregistering",
				"run_id", event.RunID,
			)
			h.Unregister <- client
		}
	}
}

// subscribeClientToRun adds a client to a run's room
func (h *Hub) subscribeClientToRun(client *Client, runID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[runID] == nil {
		h.rooms[runID] = make(map[*Client]bool)
	}
	h.rooms[runID][client] = true
	client.AddSubscription(runID)

	h.logger.Debug("client subscribed to run",
		"run_id", runID,
	)
}

// unsubscribeClientFromRun removes a client from a run's room
func (h *Hub) unsubscribeClientFromRun(client *Client, runID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[runID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, runID)
		}
	}
	client.RemoveSubscription(runID)

	h.logger.Debug("client unsubscribed from run",
		"run_id", runID,
	)
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetRoomCount returns the number of active rooms
func (h *Hub) GetRoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// GetClientsInRoom returns the number of clients subscribed to a run
func (h *Hub) GetClientsInRoom(runID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[runID]; ok {
		return len(room)
	}
	return 0
}
