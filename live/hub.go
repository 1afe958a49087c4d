// Package live streams game lifecycle events to connected dashboard
// clients over websockets. Clients join a room keyed by their user id,
// so every user only sees their own games.
package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/riftbook/stats-system/models"
)

type FeedMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()
			h.logger.Info("live client registered", slog.String("room", client.room))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, found := clients[client]; found {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Info("live client unregistered", slog.String("room", client.room))
		}
	}
}

// PublishGameEvent implements the game service's event publisher: the
// message goes to every client in the owner's room. A marshal failure or
// a slow client drops the message; the feed is best effort.
func (h *Hub) PublishGameEvent(userID int, eventType string, game *models.Game) {
	message, err := json.Marshal(FeedMessage{Type: eventType, Payload: game})
	if err != nil {
		h.logger.Error("failed to marshal feed message", slog.Any("error", err))
		return
	}
	h.broadcastToRoom(userRoom(userID), message)
}

func (h *Hub) broadcastToRoom(room string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- message:
			default:
			}
		}
		client.mu.Unlock()
	}
}

func userRoom(userID int) string {
	return fmt.Sprintf("user_%d", userID)
}
