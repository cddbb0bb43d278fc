package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Rangsey10/sport-jerseys-api/models"
)

// Feed pushes order creations and status changes to admin console
// subscribers over websocket.
type Feed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handler upgrades the connection and holds it until the client goes away.
func (f *Feed) Handler(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			f.mu.Lock()
			delete(f.clients, conn)
			f.mu.Unlock()
			break
		}
	}
}

// Broadcast sends the order to every connected subscriber. Dead connections
// are dropped on their next read, not here.
func (f *Feed) Broadcast(order *models.Order) {
	if f == nil || order == nil {
		return
	}
	data, err := json.Marshal(order)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
