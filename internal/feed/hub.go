// Package feed pushes economy events to websocket subscribers. Delivery is
// best-effort: a slow or dead client is dropped, and publishing never
// affects the outcome of the transaction that produced the event.
package feed

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is a broadcast message. Payload fields vary by type.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventCardDrawn        = "card_drawn"
	EventPackOpened       = "pack_opened"
	EventListingCreated   = "listing_created"
	EventListingCancelled = "listing_cancelled"
	EventCardSold         = "card_sold"
	EventMatchRecorded    = "match_recorded"
)

type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is broadcast-only public data.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away. Inbound messages are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("feed upgrade failed", "error", err)

		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	go h.readLoop(conn)
}

// Publish sends ev to every subscriber, dropping connections that fail.
// Safe to call with a nil hub.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		err := conn.WriteJSON(ev)
		if err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			return
		}
	}
}
