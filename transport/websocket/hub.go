package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/gridduel/gridduel/game/coordinator"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outbound queue size per client.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client represents one WebSocket connection. It implements coordinator.Conn
// so the coordinator can address it without knowing the transport.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	mu     sync.Mutex
	closed bool
}

// ID returns the stable identity assigned at upgrade time.
func (c *Client) ID() string {
	return c.id
}

// Send queues an encoded frame for delivery. It never blocks: a full queue
// drops the frame and a closed client swallows it, so sends racing a
// disconnect are harmless.
func (c *Client) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// close stops outbound delivery. Idempotent.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Hub tracks the set of active clients and bridges them to the coordinator.
type Hub struct {
	coordinator *coordinator.Coordinator

	// Registered clients
	clients map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a hub feeding the given coordinator.
func NewHub(coord *coordinator.Coordinator) *Hub {
	return &Hub{
		coordinator: coord,
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// ServeWS upgrades an HTTP request and starts the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		id:   uuid.NewString(),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// registerClient starts tracking a client.
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true

	log.Printf("Client %s connected (total clients: %d)", client.id, len(h.clients))
}

// unregisterClient stops tracking a client and reports the loss to the
// coordinator. The tracked check makes the disconnect signal exactly-once.
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.close()

	h.coordinator.Disconnect(client)

	log.Printf("Client %s disconnected (remaining clients: %d)", client.id, len(h.clients))
}

// readPump pumps messages from the WebSocket connection into the
// coordinator's dispatcher.
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
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.hub.coordinator.Dispatch(c, message)
	}
}

// writePump pumps queued frames to the WebSocket connection, one message per
// frame, and keeps the connection alive with pings.
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
				// The hub closed the client
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
