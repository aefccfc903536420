package spectate

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"robattle/internal/combat"
	"robattle/internal/logging"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type wsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan wsMsg
}

// Hub fans battle snapshots out to read-only websocket spectators. Observe
// is called from the driver goroutine; each client has its own writer.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	last     *combat.Snapshot
	upgrader websocket.Upgrader
	closed   bool
}

func NewHub() *Hub {
	return &Hub{
		clients:  map[*client]struct{}{},
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// ServeHTTP upgrades the request and registers a spectator. The newest
// snapshot, if any, is sent right after the greeting.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("spectate: upgrade failed", logging.Fields{"remote": r.RemoteAddr, "error": err.Error()})
		return
	}
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan wsMsg, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	c.send <- wsMsg{Type: "you", Data: map[string]string{"id": c.id}}
	if h.last != nil {
		c.send <- wsMsg{Type: "state", Data: *h.last}
	}
	h.mu.Unlock()

	logging.Info("spectate: connect", logging.Fields{"id": c.id, "remote": r.RemoteAddr})
	go h.writer(c)
	go h.reader(c)
}

func (h *Hub) writer(c *client) {
	defer c.conn.Close()
	for m := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(m); err != nil {
			logging.Warn("spectate: write error", logging.Fields{"id": c.id, "error": err.Error()})
			h.remove(c)
			return
		}
	}
}

// reader only watches for the peer going away; spectators cannot send input.
func (h *Hub) reader(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			logging.Info("spectate: closed", logging.Fields{"id": c.id})
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Observe broadcasts the snapshot. Slow spectators miss snapshots instead of
// stalling the battle.
func (h *Hub) Observe(snap combat.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &snap
	m := wsMsg{Type: "state", Data: snap}
	for c := range h.clients {
		select {
		case c.send <- m:
		default:
			logging.Warn("spectate: dropped snapshot", logging.Fields{"id": c.id, "tick": snap.Tick})
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Server serves the hub on /ws.
type Server struct {
	srv *http.Server
	hub *Hub
}

func NewServer(addr string, hub *Hub) *Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	return &Server{srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}, hub: hub}
}

// Start listens in the background; listen errors are logged.
func (s *Server) Start() {
	go func() {
		logging.Info("spectate: listening", logging.Fields{"addr": s.srv.Addr})
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("spectate: server stopped", err, logging.Fields{"addr": s.srv.Addr})
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}
