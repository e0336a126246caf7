package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Hub maintains the set of active clients and fans ledger events out to
// their subscribed channels.
type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	// Register/unregister requests
	register   chan *Client
	unregister chan *Client

	// Channel subscription requests
	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Ledger events queued for fanout
	events chan types.Event

	// Latest pool snapshot, rebroadcast on an interval
	poolSnapshot interface{}

	mu sync.RWMutex

	config *HubConfig
}

// HubConfig contains hub configuration.
type HubConfig struct {
	PoolInterval     time.Duration // pool snapshot rebroadcast period
	MaxSubscriptions int
	MessageRateLimit int // messages per second per client
}

// DefaultHubConfig returns default hub configuration.
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		PoolInterval:     5 * time.Second,
		MaxSubscriptions: 20,
		MessageRateLimit: 50,
	}
}

// SubscriptionRequest represents a subscription request.
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub.
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:     make(map[*Client]bool),
		channels:    make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *SubscriptionRequest, 64),
		unsubscribe: make(chan *SubscriptionRequest, 64),
		events:      make(chan types.Event, 256),
		config:      config,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	poolTicker := time.NewTicker(h.config.PoolInterval)
	defer poolTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case event := <-h.events:
			h.fanOut(event)

		case <-poolTicker.C:
			h.broadcastPoolSnapshot()
		}
	}
}

// Emit implements types.EventEmitter. Drops the event if the fanout queue
// is full rather than blocking the ledger.
func (h *Hub) Emit(event types.Event) {
	select {
	case h.events <- event:
	default:
	}
}

// UpdatePoolSnapshot replaces the pool state rebroadcast on the pools
// channel.
func (h *Hub) UpdatePoolSnapshot(snapshot interface{}) {
	h.mu.Lock()
	h.poolSnapshot = snapshot
	h.mu.Unlock()
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		for channel, clients := range h.channels {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}
		close(client.send)
	}
}

func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// fanOut routes one ledger event to the firehose channel and the owning
// account's private channel.
func (h *Hub) fanOut(event types.Event) {
	msg := &WSMessage{
		Type:    event.Type,
		Channel: "events",
		Data:    event,
	}
	h.BroadcastToChannel("events", msg)

	if owner := event.Attributes["owner"]; owner != "" {
		channel := "account:" + owner
		h.BroadcastToChannel(channel, &WSMessage{
			Type:    event.Type,
			Channel: channel,
			Data:    event,
		})
	}
}

func (h *Hub) broadcastPoolSnapshot() {
	h.mu.RLock()
	snapshot := h.poolSnapshot
	h.mu.RUnlock()
	if snapshot == nil {
		return
	}

	h.BroadcastToChannel("pools", &WSMessage{
		Type:    "pools",
		Channel: "pools",
		Data:    snapshot,
	})
}

// BroadcastToChannel sends a message to all clients subscribed to a channel.
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held during send
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	for _, client := range clientList {
		select {
		case client.send <- data:
		default:
			// Client buffer is full, skip
		}
	}
}

// WSMessage represents a WebSocket message.
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data,omitempty"`
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelCount returns the number of active channels.
func (h *Hub) GetChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// ServeWS handles WebSocket upgrade requests.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = generateID()
	}

	account := r.URL.Query().Get("account")

	client := NewClient(h, conn, clientID, account)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
