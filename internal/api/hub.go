package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the JSON envelope for every frame pushed over /ws.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub tracks connected sockets and fans state updates out to them. Slow
// consumers are dropped rather than allowed to stall the broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsClient]bool
	logger  *log.Logger
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{clients: map[*wsClient]bool{}, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin browser game; the server also serves the frontend.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and keeps the connection registered until the
// peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade: %v", err)
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go c.writeLoop()
	c.readLoop(h)
}

// Broadcast pushes one message to every connected socket.
func (h *Hub) Broadcast(typ string, payload any) {
	b, err := json.Marshal(Message{Type: typ, Payload: payload})
	if err != nil {
		h.logger.Printf("ws marshal: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports the number of open sockets.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(c *wsClient) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

func (c *wsClient) writeLoop() {
	for b := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}

// readLoop discards inbound frames; the socket is push-only. It exists to
// notice the close handshake.
func (c *wsClient) readLoop(h *Hub) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
