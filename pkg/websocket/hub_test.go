package websocket

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestClient(h *Hub, buffer int) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, buffer),
	}
}

func TestSlowClientDropDoesNotBreakReplies(t *testing.T) {
	h := NewHub()
	client := newTestClient(h, 1)
	h.clients[client] = true

	// First broadcast fills the one-slot buffer, second one drops the
	// client and closes its send channel.
	h.broadcastRaw([]byte(`{"type":"zone_updated"}`))
	h.broadcastRaw([]byte(`{"type":"zone_updated"}`))

	if _, ok := h.clients[client]; ok {
		t.Fatalf("slow client still registered after full buffer")
	}

	// The client's read loop may still be mid-event; its reply must be
	// silently dropped, not panic on the closed channel.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("sendJSON panicked after client was dropped: %v", r)
		}
	}()
	client.sendJSON(Message{Type: "error", Timestamp: getCurrentTimestamp()})

	if client.enqueue([]byte("late")) {
		t.Fatalf("enqueue succeeded on a dropped client")
	}
}

func TestUnregisterAfterDropIsIdempotent(t *testing.T) {
	h := NewHub()
	client := newTestClient(h, 1)
	h.clients[client] = true

	h.broadcastRaw([]byte("a"))
	h.broadcastRaw([]byte("b"))

	// readPump's deferred unregister still fires after a hub-side drop.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unregister after drop panicked: %v", r)
		}
	}()
	h.unregisterClient(client)
	client.closeSend()
}

func TestBroadcastReachesHealthyClients(t *testing.T) {
	h := NewHub()
	healthy := newTestClient(h, 4)
	slow := newTestClient(h, 0)
	h.clients[healthy] = true
	h.clients[slow] = true

	h.broadcastRaw([]byte(`{"type":"zone_deleted"}`))

	if len(healthy.send) != 1 {
		t.Fatalf("healthy client queued %d messages, want 1", len(healthy.send))
	}
	if _, ok := h.clients[slow]; ok {
		t.Fatalf("unbuffered client survived broadcast")
	}
	if _, ok := h.clients[healthy]; !ok {
		t.Fatalf("healthy client was dropped")
	}
}

func TestRegisterSendsWelcome(t *testing.T) {
	h := NewHub()
	client := newTestClient(h, 4)
	client.UserID = primitive.NewObjectID()

	h.registerClient(client)

	if _, ok := h.clients[client]; !ok {
		t.Fatalf("client not registered")
	}
	if len(client.send) != 1 {
		t.Fatalf("welcome not queued, send len = %d", len(client.send))
	}
}
