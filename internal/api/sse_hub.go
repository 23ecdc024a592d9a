package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pointage/internal/logging"
	"pointage/models"
)

// SSEHub manages Server-Sent Events for live dashboard updates. It
// implements ports.Notifier: the tracker service hands it every committed
// transition and the hub fans it out to connected supervisors. Delivery is
// best-effort; a slow client drops events, never blocks the writer.
type SSEHub struct {
	clients    map[chan models.SessionChangedEvent]bool
	clientsMu  sync.RWMutex
	register   chan chan models.SessionChangedEvent
	unregister chan chan models.SessionChangedEvent
	broadcast  chan models.SessionChangedEvent
	log        *logging.Logger
}

// NewSSEHub creates a new SSE hub and starts its dispatch loop
func NewSSEHub(log *logging.Logger) *SSEHub {
	hub := &SSEHub{
		clients:    make(map[chan models.SessionChangedEvent]bool),
		register:   make(chan chan models.SessionChangedEvent, 10),
		unregister: make(chan chan models.SessionChangedEvent, 10),
		broadcast:  make(chan models.SessionChangedEvent, 100),
		log:        log,
	}

	go hub.run()
	return hub
}

// run processes hub operations
func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.log.Debug("SSE client registered (total: %d)", len(h.clients))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				close(client)
			}
			h.log.Debug("SSE client unregistered (remaining: %d)", len(h.clients))
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for client := range h.clients {
				select {
				case client <- event:
				default:
					// Client channel is full, skip
					h.log.Warn("SSE client channel full, skipping event %s", event.Action)
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// SessionChanged implements ports.Notifier. Fire-and-forget: when the
// broadcast buffer is full the event is dropped, never the caller delayed.
func (h *SSEHub) SessionChanged(event models.SessionChangedEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("SSE broadcast channel full, dropping event: %s", event.Action)
	}
}

// ClientCount returns the number of connected listeners
func (h *SSEHub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// ServeHTTP streams session events to one dashboard client
func (h *SSEHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan models.SessionChangedEvent, 10)
	select {
	case h.register <- clientChan:
	default:
		http.Error(w, "hub registration failed", http.StatusServiceUnavailable)
		return
	}
	defer func() {
		select {
		case h.unregister <- clientChan:
		default:
		}
	}()

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case event, open := <-clientChan:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Error("failed to marshal SSE event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload)
			flusher.Flush()

		case <-keepAlive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\": %q}\n\n", time.Now().Format(time.RFC3339))
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}
