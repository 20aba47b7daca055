package http

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"go-exchange-orders/feed"
)

// hub tracks connected feed subscribers. All writes to a connection happen
// under the hub lock, so snapshots never interleave on the wire.
type hub struct {
	lock    sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{
		clients: map[*websocket.Conn]bool{},
	}
}

func (h *hub) add(conn *websocket.Conn, rows []feed.Row) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.clients[conn] = true
	if err := conn.WriteJSON(rows); err != nil {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *hub) remove(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *hub) broadcast(rows []feed.Row) {
	h.lock.Lock()
	defer h.lock.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(rows); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// feedSocket produces the HTTP handler streaming feed snapshots: one on
// connect, then a fresh one after every store change
func (s *Server) feedSocket() http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.Logger.Log("msg", "websocket upgrade failed", "err", err)
			return
		}

		s.hub.add(conn, s.Feed.Rows())
		go s.discardIncoming(conn)
	}
}

// broadcastFeed pushes the current feed to every subscriber. Registered as
// the store's change listener.
func (s *Server) broadcastFeed() {
	s.hub.broadcast(s.Feed.Rows())
}

// discardIncoming drains client frames until the connection drops. The
// feed stream is one-way; clients have nothing to say.
func (s *Server) discardIncoming(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.remove(conn)
			return
		}
	}
}
