package sim

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func newWSClient(conn *websocket.Conn) *wsClient {
	c := &wsClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *wsClient) close() {
	close(c.send)
}

// Hub fans broadcast frames out to every connected stream client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*wsClient]bool),
	}
}

// Add registers a connection and starts its write pump. The caller
// owns the read side and must call Remove when it ends.
func (h *Hub) Add(conn *websocket.Conn) *wsClient {
	c := newWSClient(conn)

	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()

	log.Printf("stream client %s connected (%d total)", c.id, n)
	return c
}

func (h *Hub) Remove(c *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		c.close()
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		log.Printf("stream client %s disconnected (%d total)", c.id, n)
	}
}

// Broadcast marshals v once and queues it on every client. Clients
// whose send buffer is full are disconnected rather than blocking the
// generator tick.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			log.Printf("stream client %s too slow, disconnecting", c.id)
			h.Remove(c)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
