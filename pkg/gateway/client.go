package gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cmccomb/pastrami/internal/observability"
)

// Client is one connected gateway client. Writes are serialized so streamed
// events and the final response never interleave mid-frame.
type Client struct {
	ID            string
	Authenticated bool
	ConnectedAt   time.Time

	writeMu sync.Mutex
	conn    *websocket.Conn
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:          uuid.NewString(),
		ConnectedAt: time.Now(),
		conn:        conn,
	}
}

func (c *Client) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// SendResponse writes an RPC response to the client
func (c *Client) SendResponse(resp *RPCResponse) error {
	return c.writeJSON(resp)
}

// PushEvent implements EventSink.
func (c *Client) PushEvent(event string, requestID string, data interface{}) {
	// Best effort: a write failure here surfaces on the next response write.
	_ = c.writeJSON(&EventMessage{
		Event:     event,
		RequestID: requestID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// ClientRegistry tracks connected clients
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewClientRegistry creates a new client registry
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{clients: make(map[string]*Client)}
}

// Add registers a client
func (r *ClientRegistry) Add(client *Client) {
	r.mu.Lock()
	r.clients[client.ID] = client
	n := len(r.clients)
	r.mu.Unlock()
	observability.SetGatewayClients(n)
}

// Remove deregisters a client
func (r *ClientRegistry) Remove(id string) {
	r.mu.Lock()
	delete(r.clients, id)
	n := len(r.clients)
	r.mu.Unlock()
	observability.SetGatewayClients(n)
}

// Count returns the number of connected clients
func (r *ClientRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
