package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"menuforge/internal/ingest"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the editor SPA runs on a different origin
	},
}

const writeWait = 10 * time.Second

// ProgressHub fans ingestion progress events out to the WebSocket
// clients watching each restaurant's import.
type ProgressHub struct {
	mu       sync.Mutex
	watchers map[string]map[*websocket.Conn]bool
}

// NewProgressHub creates an empty hub
func NewProgressHub() *ProgressHub {
	return &ProgressHub{watchers: make(map[string]map[*websocket.Conn]bool)}
}

// Handle upgrades the request and registers the client for the
// restaurant's progress events until it disconnects.
func (h *ProgressHub) Handle(c *gin.Context) {
	restaurantID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("api: websocket upgrade failed: %v", err)
		return
	}

	h.register(restaurantID, conn)

	// read pump: we expect nothing from the client, but reading keeps
	// pings handled and detects the close.
	go func() {
		defer h.unregister(restaurantID, conn)
		conn.SetReadLimit(1024)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends a progress event to every watcher of the restaurant
func (h *ProgressHub) Broadcast(restaurantID string, ev ingest.ProgressEvent) {
	message, err := json.Marshal(ev)
	if err != nil {
		log.Printf("api: encode progress event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.watchers[restaurantID] {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(h.watchers[restaurantID], conn)
		}
	}
}

func (h *ProgressHub) register(restaurantID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[restaurantID] == nil {
		h.watchers[restaurantID] = make(map[*websocket.Conn]bool)
	}
	h.watchers[restaurantID][conn] = true
}

func (h *ProgressHub) unregister(restaurantID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.watchers[restaurantID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.watchers, restaurantID)
		}
	}
	conn.Close()
}
