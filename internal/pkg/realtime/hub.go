package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/ManuelReschke/VendaBot/internal/pkg/metrics"
)

// Event types sent to dashboard clients.
const (
	EventConnected          = "CONNECTED"
	EventPong               = "PONG"
	EventNewSale            = "NEW_SALE"
	EventUpdatedSale        = "UPDATED_SALE"
	EventServerStatusChange = "SERVER_STATUS_CHANGE"

	eventPing = "PING"
)

// TextMessage is the WebSocket opcode for text frames (RFC 6455).
const TextMessage = 1

// Reconnect contract for clients: give up after MaxReconnectAttempts, waiting
// ReconnectDelay(attempt) between tries.
const (
	MaxReconnectAttempts = 5
	baseReconnectDelay   = time.Second
	maxReconnectDelay    = 30 * time.Second
)

// ReconnectDelay returns min(1s * 2^attempt, 30s).
func ReconnectDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= 5 {
		return maxReconnectDelay
	}
	d := baseReconnectDelay << attempt
	if d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}

// Message is the envelope of every frame exchanged with clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Conn is the part of a WebSocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Notifier publishes events. Handlers depend on it instead of the Hub.
type Notifier interface {
	Broadcast(eventType string, data any) error
}

// Client is one registered connection. Writes are serialized per client.
type Client struct {
	ID   string
	conn Conn
	mu   sync.Mutex
}

func (c *Client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(TextMessage, payload)
}

// Hub keeps the set of live dashboard connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	now     func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		now:     time.Now,
	}
}

// Register adds a connection and greets it with CONNECTED. The greeting is
// written before any broadcast can reach the new client.
func (h *Hub) Register(conn Conn) *Client {
	client := &Client{ID: uuid.NewString(), conn: conn}
	greeting, err := json.Marshal(Message{Type: EventConnected, Data: fiber.Map{
		"message":   "Conectado ao servidor de notificações",
		"timestamp": h.timestamp(),
	}})
	if err != nil {
		fiberlog.Errorf("realtime: encoding %s: %v", EventConnected, err)
	}

	client.mu.Lock()
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	metrics.ConnectionOpened()
	fiberlog.Debugf("realtime: client %s connected", client.ID)
	if err == nil {
		err = client.conn.WriteMessage(TextMessage, greeting)
	}
	client.mu.Unlock()

	if err != nil {
		fiberlog.Warnf("realtime: dropping client %s: %v", client.ID, err)
		h.Unregister(client)
	}
	return client
}

// Unregister removes and closes a connection. Safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ID]
	delete(h.clients, client.ID)
	h.mu.Unlock()
	if !ok {
		return
	}
	metrics.ConnectionClosed()
	_ = client.conn.Close()
	fiberlog.Debugf("realtime: client %s disconnected", client.ID)
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleMessage processes one frame received from a client. PING is answered
// with PONG; anything else is logged and ignored.
func (h *Hub) HandleMessage(client *Client, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		fiberlog.Warnf("realtime: invalid message from %s: %v", client.ID, err)
		return
	}
	switch msg.Type {
	case eventPing:
		h.send(client, Message{Type: EventPong, Data: fiber.Map{"timestamp": h.timestamp()}})
	default:
		fiberlog.Debugf("realtime: ignoring %q from %s", msg.Type, client.ID)
	}
}

// Broadcast sends the same payload to every registered connection. A
// connection whose write fails is dropped.
func (h *Hub) Broadcast(eventType string, data any) error {
	payload, err := json.Marshal(Message{Type: eventType, Data: data})
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	metrics.RecordBroadcast(eventType)
	for _, c := range clients {
		if err := c.write(payload); err != nil {
			fiberlog.Warnf("realtime: dropping client %s: %v", c.ID, err)
			h.Unregister(c)
		}
	}
	return nil
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.Unregister(c)
	}
}

func (h *Hub) send(client *Client, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		fiberlog.Errorf("realtime: encoding %s: %v", msg.Type, err)
		return
	}
	if err := client.write(payload); err != nil {
		fiberlog.Warnf("realtime: dropping client %s: %v", client.ID, err)
		h.Unregister(client)
	}
}

func (h *Hub) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}
