package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub tracks board connections grouped by company.
type Hub struct {
	clients        map[*Client]bool
	companyClients map[string]map[*Client]bool
	register       chan *Client
	unregister     chan *Client
	done           chan struct{}
	mu             sync.RWMutex
	logger         *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		companyClients: make(map[string]map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		done:           make(chan struct{}),
		logger:         logger,
	}
}

// Run serves registrations until ctx is cancelled. After it returns,
// Register and Unregister no longer block.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.companyClients[client.CompanyID] == nil {
				h.companyClients[client.CompanyID] = make(map[*Client]bool)
			}
			h.companyClients[client.CompanyID][client] = true
			h.mu.Unlock()
			h.logger.Debug("board client registered", zap.String("userID", client.UserID), zap.String("companyID", client.CompanyID))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register adds the client to its company group. It returns false once the
// hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)

	if group := h.companyClients[client.CompanyID]; group != nil {
		delete(group, client)
		if len(group) == 0 {
			delete(h.companyClients, client.CompanyID)
		}
	}
	h.logger.Debug("board client disconnected", zap.String("userID", client.UserID))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[*Client]bool)
	h.companyClients = make(map[string]map[*Client]bool)
}

// ClientCount returns the open connections of a company.
func (h *Hub) ClientCount(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.companyClients[companyID])
}

// SendToCompany delivers the message to every connection of the company
// accepted by the filter. A nil filter accepts all. Slow clients lose the
// message instead of blocking the sender.
func (h *Hub) SendToCompany(companyID string, messageType string, payload interface{}, filter func(c *Client) bool) (int, error) {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.companyClients[companyID] {
		if filter != nil && !filter(client) {
			continue
		}
		select {
		case client.Send <- messageBytes:
			delivered++
		default:
			h.logger.Warn("board client buffer full, message dropped", zap.String("userID", client.UserID))
		}
	}
	return delivered, nil
}
