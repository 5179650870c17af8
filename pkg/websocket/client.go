package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/drawing"
	"skyfence/internal/geometry"
	"skyfence/internal/validators"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// Large enough for a full ring payload when a client opens an
	// existing zone for editing.
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly in production
	},
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	UserID   primitive.ObjectID
	UserType string

	session *drawing.Session
	zones   ZoneLoader

	// sendMu guards closed. Both the hub and the client's own read loop
	// send on the send channel, so it may only be closed behind the flag.
	sendMu sync.Mutex
	closed bool
}

// event is a client-to-server drawing command.
type event struct {
	Type   string  `json:"type"`
	ZoneID string  `json:"zone_id,omitempty"`
	Index  int     `json:"index,omitempty"`
	Lng    float64 `json:"lng,omitempty"`
	Lat    float64 `json:"lat,omitempty"`
}

// sessionState is pushed back after every command so the client can mirror
// the server-side drawing state.
type sessionState struct {
	Type        string      `json:"type"`
	Mode        string      `json:"mode"`
	MapEnabled  bool        `json:"map_interaction_enabled"`
	VertexCount int         `json:"vertex_count"`
	Valid       bool        `json:"valid"`
	Reason      string      `json:"reason,omitempty"`
	Message     string      `json:"message,omitempty"`
	Ring        [][]float64 `json:"ring,omitempty"`
}

func NewClient(hub *Hub, conn *websocket.Conn, userID primitive.ObjectID, userType string, zones ZoneLoader) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		UserID:   userID,
		UserType: userType,
		session:  drawing.NewSession(),
		zones:    zones,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.sendError("malformed message")
			continue
		}
		c.handleEvent(ev)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleEvent(ev event) {
	switch ev.Type {
	case "start_drawing":
		if err := c.session.StartDrawing(); err != nil {
			c.sendError(err.Error())
			return
		}
		c.sendState("session")

	case "edit_zone":
		c.handleEditZone(ev.ZoneID)

	case "place_vertex":
		if err := c.session.PlaceVertex(geometry.Point{Lng: ev.Lng, Lat: ev.Lat}); err != nil {
			c.sendError(err.Error())
			return
		}
		c.sendState("session")

	case "move_vertex":
		if err := c.session.MoveVertex(ev.Index, geometry.Point{Lng: ev.Lng, Lat: ev.Lat}); err != nil {
			c.sendError(err.Error())
			return
		}
		c.sendState("session")

	case "delete_vertex":
		if err := c.session.DeleteVertex(ev.Index); err != nil {
			c.sendError(err.Error())
			return
		}
		c.sendState("session")

	case "complete":
		ring, err := c.session.Complete()
		if err != nil {
			state := c.buildState("session")
			state.Valid = false
			state.Reason = reasonFor(err)
			state.Message = err.Error()
			c.sendJSON(state)
			return
		}
		state := c.buildState("completed")
		state.Ring = make([][]float64, 0, len(ring))
		for _, p := range ring {
			state.Ring = append(state.Ring, []float64{p.Lng, p.Lat})
		}
		c.sendJSON(state)

	case "cancel":
		c.session.Cancel()
		c.sendState("session")

	case "close":
		c.session.CloseForm()
		c.sendState("session")

	case "ping":
		c.sendJSON(Message{Type: "pong", Timestamp: getCurrentTimestamp()})

	default:
		c.sendError("unknown event type: " + ev.Type)
	}
}

func (c *Client) handleEditZone(id string) {
	zoneID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.sendError("invalid zone id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zone, err := c.zones.GetByID(ctx, zoneID)
	if err != nil {
		c.sendError("zone not found")
		return
	}

	ring, err := zone.Boundary.OuterRing()
	if err != nil {
		c.sendError("stored boundary is unreadable")
		return
	}

	if err := c.session.EditRing(ring); err != nil {
		c.sendError(err.Error())
		return
	}
	c.sendState("session")
}

func (c *Client) buildState(msgType string) sessionState {
	state := sessionState{
		Type:        msgType,
		Mode:        c.session.Mode().String(),
		MapEnabled:  c.session.MapInteractionEnabled(),
		VertexCount: len(c.session.Points()),
		Valid:       true,
	}
	if verdict := c.session.Verdict(); verdict != nil {
		state.Valid = false
		state.Reason = reasonFor(verdict)
		state.Message = verdict.Error()
	}
	return state
}

func (c *Client) sendState(msgType string) {
	c.sendJSON(c.buildState(msgType))
}

func (c *Client) sendError(message string) {
	c.sendJSON(Message{
		Type:      "error",
		Timestamp: getCurrentTimestamp(),
		Data:      map[string]interface{}{"message": message},
	})
}

func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.enqueue(data)
}

// enqueue queues a message for the write pump. It reports false when the
// buffer is full or the client has already been dropped.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once. After it returns, enqueue
// is a no-op instead of a panic.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func reasonFor(err error) string {
	if errors.Is(err, drawing.ErrMissingGeometry) {
		return validators.ReasonMissingGeometry
	}
	return validators.GeometryReason(err)
}
