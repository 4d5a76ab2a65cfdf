package web

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1024
	outboxSize     = 16
)

// Client is one browser connection. Writes go through a buffered outbox
// drained by a single writer goroutine.
type Client struct {
	ID       string
	ws       *websocket.Conn
	outbox   chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

// NewClient wraps ws and assigns a fresh id.
func NewClient(ws *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		ws:     ws,
		outbox: make(chan []byte, outboxSize),
		done:   make(chan struct{}),
	}
}

// Send queues raw JSON for the client.
// If the outbox is full, the oldest message is dropped to prevent blocking.
func (c *Client) Send(data []byte) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.outbox <- data:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-c.outbox:
		default:
		}
		select {
		case c.outbox <- data:
		default:
		}
	}
}

// SendJSON encodes msg and queues it.
func (c *Client) SendJSON(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.Send(data)
	return nil
}

// Done returns a channel that closes when the client goes away.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close marks the client done and closes the socket.
// Safe to call multiple times.
func (c *Client) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// WriteLoop sends queued messages until the client closes.
func (c *Client) WriteLoop() {
	defer c.Close()
	for {
		select {
		case <-c.done:
			return
		case data := <-c.outbox:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// ReadLoop decodes incoming messages and hands them to onMessage until the
// connection fails. It returns the error that ended it.
func (c *Client) ReadLoop(onMessage func(ClientMessage)) error {
	defer c.Close()
	c.ws.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = c.SendJSON(ErrorMsg{Type: MsgError, Message: "malformed message"})
			continue
		}
		onMessage(msg)
	}
}

// Hub tracks connected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Add registers a client.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// TryAdd registers c unless limit clients are already connected.
// A limit below 1 means no limit.
func (h *Hub) TryAdd(c *Client, limit int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit > 0 && len(h.clients) >= limit {
		return false
	}
	h.clients[c.ID] = c
	return true
}

// Remove unregisters a client.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues data for every client.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.Send(data)
	}
}
