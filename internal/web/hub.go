// Package web exposes the live tactical picture over HTTP and WebSocket.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// Message is the JSON envelope for every frame pushed to clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is one connected browser tab.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts rows to them. It
// doubles as a writer pair so the simulator can be wired to it directly.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *slog.Logger
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub event loop; it returns when ctx is canceled. Registration
// and unregistration after that point fall through on the done channel, so a
// client goroutine outliving the hub never blocks.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the connection.
					close(client.send)
					delete(h.clients, client)
				}
			}
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			close(h.done)
			return
		}
	}
}

// addClient hands a new connection to the event loop, or rejects it when the
// hub has already shut down.
func (h *Hub) addClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// dropClient removes a connection, tolerating a hub that has already stopped.
func (h *Hub) dropClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// publish queues a frame without ever blocking the tick loop.
func (h *Hub) publish(msgType string, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		h.logger.Error("marshal broadcast frame", "type", msgType, "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}

// WriteTrack implements sim.TrackWriter by broadcasting the row.
func (h *Hub) WriteTrack(row contact.TrackRow) error {
	h.publish("track", row)
	return nil
}

// WriteTracks broadcasts a full tick of track rows as one frame.
func (h *Hub) WriteTracks(rows []contact.TrackRow) error {
	h.publish("tracks", rows)
	return nil
}

// WriteEvent implements sim.EventWriter by broadcasting the row.
func (h *Hub) WriteEvent(row sonar.EventRow) error {
	h.publish("event", row)
	return nil
}

// WriteEvents broadcasts a batch of event rows as one frame.
func (h *Hub) WriteEvents(rows []sonar.EventRow) error {
	h.publish("events", rows)
	return nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a WebSocket and registers the client.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 64)}
	if !hub.addClient(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection so pings and close frames are processed.
func (c *Client) readPump() {
	defer func() {
		c.hub.dropClient(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
