package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	// The widget is embedded on arbitrary external pages, so origin checking
	// happens at the CORS/proxy layer, not here.
	CheckOrigin:      func(r *http.Request) bool { return true },
	HandshakeTimeout: 10 * time.Second,
}

// inboundMessage is what clients send over the socket. Only join is
// understood; anything else is ignored.
type inboundMessage struct {
	Event   string `json:"event"`
	PageKey string `json:"page_key"`
}

// Handler upgrades widget connections and runs their read loop.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// ServeWS handles GET /ws. The connection stays open until the client goes
// away; disconnection implicitly removes room membership.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws)
	go h.readLoop(ws, conn)
}

func (h *Handler) readLoop(ws *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unsubscribe(conn)
		conn.Close()
	}()

	// Inbound traffic from a widget is a handful of joins; cap it so a
	// misbehaving client cannot spin the loop.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}

		if !limiter.Allow() {
			continue
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		if msg.Event == "join" && msg.PageKey != "" {
			h.hub.Join(conn, msg.PageKey)
		}
	}
}
