package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/Niffb/Livwishlist/internal/services"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler pushes a reload event to connected clients whenever the
// remote backend reports a change. Clients respond by refetching the full
// list; the last write wins and nothing is diffed.
type EventsHandler struct {
	Service *services.ItemService

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
}

// NewEventsHandler creates a new instance of EventsHandler.
func NewEventsHandler(service *services.ItemService) *EventsHandler {
	return &EventsHandler{
		Service: service,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start subscribes to the backend's change feed and fans events out to the
// websocket clients. Backends without a feed make this a no-op.
func (h *EventsHandler) Start(ctx context.Context) error {
	changes, err := h.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if changes == nil {
		log.Info("Storage backend has no change feed, live reload disabled")
		return nil
	}

	go func() {
		for range changes {
			h.broadcastReload()
		}
	}()
	return nil
}

// SubscribeHandler upgrades the connection and keeps it registered until the
// client goes away.
func (h *EventsHandler) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = true
	h.clientsMu.Unlock()

	// Drain reads until the peer closes so we notice disconnects.
	go func() {
		defer h.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *EventsHandler) broadcastReload() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(map[string]string{"type": "reload"}); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *EventsHandler) removeClient(conn *websocket.Conn) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	conn.Close()
	delete(h.clients, conn)
}
