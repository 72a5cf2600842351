package websocket

import (
	"encoding/json"
	"sync"

	"ledger/internal/models"
)

// AllUsers subscribes a client to every user's updates (admin panel).
const AllUsers = "*"

type BalanceUpdate struct {
	UserID      string             `json:"userId"`
	Balance     int64              `json:"balance"`
	Transaction models.Transaction `json:"transaction"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// BroadcastBalance never blocks: a client whose buffer is full misses the
// update.
func (h *Hub) BroadcastBalance(userID string, update BalanceUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, key := range []string{userID, AllUsers} {
		for client := range h.clients[key] {
			select {
			case client.send <- payload:
			default:
			}
		}
	}
}
