package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hub tracks connected drawing clients and fans zone lifecycle events out to
// every open editor, so a map view refreshes when another operator changes a
// zone.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Message is the server-to-client envelope.
type Message struct {
	Type      string                 `json:"type"`
	UserID    primitive.ObjectID     `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastRaw(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	welcome := Message{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}
	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
}

// BroadcastZoneEvent notifies every connected client that a zone changed.
func (h *Hub) BroadcastZoneEvent(event string, zoneID primitive.ObjectID) {
	message := Message{
		Type:      event,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"zone_id": zoneID.Hex(),
		},
	}
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	h.broadcast <- data
}

// broadcastRaw fans a message out to every client, dropping clients whose
// send buffer is full. Removal goes through closeSend so a reply from the
// client's own read loop can never hit a closed channel.
func (h *Hub) broadcastRaw(data []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if !client.enqueue(data) {
			delete(h.clients, client)
			client.closeSend()
		}
	}
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	if !client.enqueue(data) {
		delete(h.clients, client)
		client.closeSend()
	}
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
