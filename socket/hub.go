// Package socket fans coarse change notifications out to connected clients.
// A signal only means "your summaries may have changed, re-fetch the list";
// it never carries record data, so delivery order relative to the triggering
// API call does not matter.
package socket

import (
	"encoding/json"
	"sync"

	"sintesi/pkg/logger"

	"github.com/gorilla/websocket"
)

// RefreshType tells the client to re-fetch its summary list.
const RefreshType = "REFRESH"

type WSMessage struct {
	Type string `json:"type"`
}

// Hub tracks one room per owner. All of an owner's open tabs share a room
// and receive the same refresh signals.
type Hub struct {
	Rooms      map[string]map[*Client]bool // ownerID -> connections
	Register   chan *Client
	Unregister chan *Client
	Notify     chan string // ownerID whose records changed
	mu         sync.Mutex
}

type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	OwnerID string
	Send    chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Notify:     make(chan string, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.OwnerID] == nil {
				h.Rooms[client.OwnerID] = make(map[*Client]bool)
			}
			h.Rooms[client.OwnerID][client] = true
			h.mu.Unlock()
			logger.Sugar.Infof("Client connected for owner %s", client.OwnerID)

		case client := <-h.Unregister:
			h.remove(client)

		case ownerID := <-h.Notify:
			payload, err := json.Marshal(WSMessage{Type: RefreshType})
			if err != nil {
				logger.Sugar.Errorf("Error marshalling refresh message: %v", err)
				continue
			}

			// Snapshot recipients so the socket writes happen outside the lock.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[ownerID]))
			for client := range h.Rooms[ownerID] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			var lagging []*Client
			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// A full buffer means the client is not reading; drop it
					// rather than blocking the hub.
					logger.Sugar.Warnf("Client of owner %s has a full send buffer. Dropping.", client.OwnerID)
					lagging = append(lagging, client)
				}
			}
			for _, client := range lagging {
				h.remove(client)
			}
		}
	}
}

// remove takes a client out of its room and closes its send channel. Safe to
// call twice for the same client.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.Rooms[client.OwnerID][client]; ok {
		delete(h.Rooms[client.OwnerID], client)
		close(client.Send)
		if len(h.Rooms[client.OwnerID]) == 0 {
			delete(h.Rooms, client.OwnerID)
		}
	}
}

// NotifyOwner queues a refresh signal for every connection of the owner.
// Non-blocking: if the hub is saturated the signal is dropped, which is safe
// because clients always re-fetch the authoritative list on the next signal.
func (h *Hub) NotifyOwner(ownerID string) {
	select {
	case h.Notify <- ownerID:
	default:
		logger.Sugar.Warnf("Notify queue full, dropping refresh for owner %s", ownerID)
	}
}
